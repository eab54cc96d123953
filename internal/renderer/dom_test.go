package renderer

import (
	"testing"
)

func TestElementStyle(t *testing.T) {
	e := NewElement("div")
	e.SetStyle("display", "block").SetStyle("width", "10px")

	if got, _ := e.Attr("style"); got != "display:block;width:10px" {
		t.Errorf("style = %q", got)
	}

	e.SetStyle("display", "none")
	if got, _ := e.Attr("style"); got != "display:none;width:10px" {
		t.Errorf("style after replace = %q", got)
	}

	e.SetStyle("display", "")
	if got := e.Style("display"); got != "" {
		t.Errorf("display = %q, want removed", got)
	}
	if got := e.Style("width"); got != "10px" {
		t.Errorf("width = %q, want 10px", got)
	}

	e.SetStyle("width", "")
	if _, ok := e.Attr("style"); ok {
		t.Error("expected style attribute to be removed")
	}
}

func TestElementClasses(t *testing.T) {
	e := NewElement("div").AddClass("chart").AddClass("chart").AddClass("wide")

	if got, _ := e.Attr("class"); got != "chart wide" {
		t.Errorf("class = %q, want %q", got, "chart wide")
	}
	if !e.HasClass("wide") || e.HasClass("narrow") {
		t.Error("HasClass mismatch")
	}
}

func TestElementTree(t *testing.T) {
	root := NewElement("div")
	a := NewElement("p").SetText("a")
	b := NewElement("p").SetText("b")
	c := NewElement("p").SetText("c")

	root.Append(b)
	root.Prepend(a)
	root.Append(c)

	children := root.Children()
	if len(children) != 3 {
		t.Fatalf("got %d children, want 3", len(children))
	}
	if got := root.Text(); got != "abc" {
		t.Errorf("Text() = %q, want %q", got, "abc")
	}
	if b.Parent().Node() != root.Node() {
		t.Error("Parent() does not point at root")
	}

	// Moving an attached element detaches it first.
	other := NewElement("div")
	other.Append(a)
	if got := root.Text(); got != "bc" {
		t.Errorf("Text() after move = %q, want %q", got, "bc")
	}

	root.Empty()
	if root.FirstChild() != nil {
		t.Error("expected no children after Empty")
	}
}

func TestElementAppendHTML(t *testing.T) {
	root := NewElement("div")
	if err := root.AppendHTML(`<p class="x">one</p><p>two</p>`); err != nil {
		t.Fatalf("AppendHTML() error = %v", err)
	}

	if got := len(root.Children()); got != 2 {
		t.Fatalf("got %d children, want 2", got)
	}
	if root.Find("x") == nil {
		t.Error("Find(x) returned nil")
	}
	if got := len(root.FindTag("p")); got != 2 {
		t.Errorf("FindTag(p) = %d, want 2", got)
	}
	if got := root.InnerHTML(); got != `<p class="x">one</p><p>two</p>` {
		t.Errorf("InnerHTML() = %q", got)
	}
}

func TestElementString(t *testing.T) {
	e := NewElement("div").AddClass("h2").SetText("a < b")
	if got := e.String(); got != `<div class="h2">a &lt; b</div>` {
		t.Errorf("String() = %q", got)
	}
}
