package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/taskline/internal/model"
)

type TaskItemData struct {
	Index     int
	Title     string
	When      string
	Tags      []string
	Pinned    bool
	Completed bool
	Overdue   bool
}

type TaskListData struct {
	ViewName string
	Items    []TaskItemData
	Search   string
}

type TaskDetailData struct {
	Title       string
	Description string
	Location    string
	When        string
	Tags        []string
	Pinned      bool
	Completed   bool
}

type FeedbackData struct {
	Message string
	Failed  bool
	Errors  []string
}

// TaskItem builds a list row for the task shown at index.
func TaskItem(index int, t model.Task, now time.Time) TaskItemData {
	return TaskItemData{
		Index:     index,
		Title:     t.Title,
		When:      WhenText(t, now),
		Tags:      t.TagNames(),
		Pinned:    t.Pinned,
		Completed: t.Completed,
		Overdue:   !t.Completed && t.EndTime != nil && t.EndTime.Before(now),
	}
}

func TaskDetail(t model.Task, now time.Time) TaskDetailData {
	return TaskDetailData{
		Title:       t.Title,
		Description: t.Description,
		Location:    t.Location,
		When:        WhenText(t, now),
		Tags:        t.TagNames(),
		Pinned:      t.Pinned,
		Completed:   t.Completed,
	}
}

// WhenText is the event range for events, the relative deadline for
// deadline tasks and empty otherwise.
func WhenText(t model.Task, now time.Time) string {
	switch {
	case t.IsEvent():
		return EventText(*t.StartTime, *t.EndTime)
	case t.IsDeadline():
		return DeadlineText(*t.EndTime, now)
	default:
		return ""
	}
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s:\n", data.ViewName))
	if data.Search != "" {
		b.WriteString(data.Search + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("  (no tasks)")
		return b.String()
	}
	for _, item := range data.Items {
		b.WriteString(renderTaskItem(item) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTaskItem(item TaskItemData) string {
	marker := "[ ]"
	if item.Completed {
		marker = "[x]"
	}
	title := item.Title
	if item.Completed {
		title = doneStyle.Render(title)
	}
	line := fmt.Sprintf("%2d. %s %s", item.Index, marker, title)
	if item.Pinned {
		line += " " + pinStyle.Render("*")
	}
	if item.When != "" {
		when := item.When
		if item.Overdue {
			when = dueStyle.Render(when)
		}
		line += " (" + when + ")"
	}
	if len(item.Tags) > 0 {
		line += " #" + strings.Join(item.Tags, " #")
	}
	return line
}

func RenderTaskDetail(data TaskDetailData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("task: %s\n", data.Title))
	if data.When != "" {
		b.WriteString(fmt.Sprintf("when: %s\n", data.When))
	}
	if data.Location != "" {
		b.WriteString(fmt.Sprintf("location: %s\n", data.Location))
	}
	if len(data.Tags) > 0 {
		b.WriteString(fmt.Sprintf("tags: %s\n", strings.Join(data.Tags, ", ")))
	}
	state := "open"
	if data.Completed {
		state = "completed"
	}
	if data.Pinned {
		state += ", pinned"
	}
	b.WriteString(fmt.Sprintf("state: %s\n", state))
	if md := RenderMarkdown(data.Description); md != "" {
		b.WriteString("\n" + md)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderPreview(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return "suggestions:\n  " + strings.Join(lines, "\n  ")
}

func RenderFeedback(data FeedbackData) string {
	if data.Message == "" && len(data.Errors) == 0 {
		return ""
	}
	if len(data.Errors) == 0 {
		return data.Message
	}
	return data.Message + "\n  " + strings.Join(data.Errors, "\n  ")
}

func RenderTags(names []string) string {
	if len(names) == 0 {
		return "tags: (none)"
	}
	return "tags: " + strings.Join(names, ", ")
}

func RenderSearchStatus(terms []string, matches, total int) string {
	return fmt.Sprintf("find %q: %d of %d tasks", strings.Join(terms, " "), matches, total)
}

func RenderCommandPrompt(input string) string {
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(summaries []string, keysView string) string {
	return fmt.Sprintf("help:\n%s\n\n%s", strings.Join(summaries, "\n"), keysView)
}
