package mail

import (
	"strings"
	"testing"
)

func TestRenderMessageCommented(t *testing.T) {
	vars := map[string]string{
		"commenter":  "alice",
		"excerpt":    "nice work on this",
		"message_id": "42",
	}

	subject, body, err := render(TemplateMessageCommented, vars, "https://msghub.example.com")
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if subject != "alice commented on your message" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(body, "nice work on this") {
		t.Errorf("body missing excerpt: %q", body)
	}
	if !strings.Contains(body, "https://msghub.example.com/messages/42") {
		t.Errorf("body missing conversation link: %q", body)
	}
}

func TestRenderEscapesUserText(t *testing.T) {
	vars := map[string]string{
		"commenter":  `<b onmouseover="x()">eve</b>`,
		"excerpt":    `see <script>alert("hi")</script>`,
		"message_id": "7",
	}

	_, body, err := render(TemplateMessageCommented, vars, "https://msghub.example.com")
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if strings.Contains(body, "<script>") || strings.Contains(body, `<b onmouseover`) {
		t.Errorf("user text not escaped in body: %q", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Errorf("escaped excerpt missing from body: %q", body)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, err := render("no-such-template", nil, ""); err == nil {
		t.Error("render() accepted an unknown template")
	}
}
