package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/russross/blackfriday/v2"

	"github.com/kailas-cloud/folio/internal/domain"
	domcontact "github.com/kailas-cloud/folio/internal/domain/contact"
	"github.com/kailas-cloud/folio/internal/domain/newsletter"
	"github.com/kailas-cloud/folio/internal/domain/post"
	"github.com/kailas-cloud/folio/internal/domain/subscriber"
)

// Email kinds, used as the metrics label.
const (
	KindWelcome    = "welcome"
	KindPost       = "post"
	KindNewsletter = "newsletter"
	KindContact    = "contact"
)

// Renderer builds the transactional emails. SiteURL prefixes every link.
type Renderer struct {
	SiteName string
	SiteURL  string
}

var layout = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html><body style="font-family:sans-serif;max-width:600px;margin:0 auto;color:#222">
<h2>{{.Heading}}</h2>
{{.Body}}
{{if .Link}}<p><a href="{{.Link}}">{{.LinkText}}</a></p>{{end}}
{{if .Footer}}<hr><p style="font-size:12px;color:#888">{{.Footer}}</p>{{end}}
</body></html>`))

type page struct {
	Heading  string
	Body     template.HTML
	Link     string
	LinkText string
	Footer   string
}

// Markdown renders trusted markdown (admin-authored) to HTML.
func Markdown(md string) template.HTML {
	//nolint:gosec // admin-authored content
	return template.HTML(blackfriday.Run([]byte(md)))
}

func render(p page) string {
	var buf bytes.Buffer
	if err := layout.Execute(&buf, p); err != nil {
		return ""
	}
	return buf.String()
}

func (r Renderer) link(path string) string {
	if r.SiteURL == "" {
		return ""
	}
	return strings.TrimRight(r.SiteURL, "/") + path
}

func (r Renderer) unsubscribeFooter(email string) string {
	return fmt.Sprintf("You receive this because %s subscribed to %s.", email, r.siteName())
}

func (r Renderer) siteName() string {
	if r.SiteName == "" {
		return "our newsletter"
	}
	return r.SiteName
}

// Welcome greets a new subscriber.
func (r Renderer) Welcome(s subscriber.Subscriber) domain.Email {
	greeting := "Hi,"
	if s.Name() != "" {
		greeting = "Hi " + s.Name() + ","
	}
	body := template.HTML("<p>" + template.HTMLEscapeString(greeting) + "</p>" +
		"<p>Thanks for subscribing. New posts and newsletters will land in this inbox.</p>")
	return domain.Email{
		To:          s.Email(),
		ToName:      s.Name(),
		Subject:     "Welcome to " + r.siteName(),
		HTMLContent: render(page{Heading: "Welcome!", Body: body, Link: r.link("/blog"), LinkText: "Read the blog"}),
		TextContent: greeting + "\n\nThanks for subscribing.",
		Kind:        KindWelcome,
	}
}

// PostPublished announces a newly published post to one subscriber.
func (r Renderer) PostPublished(p post.Post, s subscriber.Subscriber) domain.Email {
	summary := p.Description()
	if summary == "" {
		summary = excerpt(p.Content(), 280)
	}
	link := r.link("/blog/" + p.Slug())
	return domain.Email{
		To:      s.Email(),
		ToName:  s.Name(),
		Subject: "New post: " + p.Title(),
		HTMLContent: render(page{
			Heading:  p.Title(),
			Body:     Markdown(summary),
			Link:     link,
			LinkText: "Read the full post",
			Footer:   r.unsubscribeFooter(s.Email()),
		}),
		TextContent: p.Title() + "\n\n" + summary + "\n\n" + link,
		Kind:        KindPost,
	}
}

// Newsletter renders one issue for one subscriber.
func (r Renderer) Newsletter(issue newsletter.Issue, s subscriber.Subscriber) domain.Email {
	return domain.Email{
		To:      s.Email(),
		ToName:  s.Name(),
		Subject: issue.Subject(),
		HTMLContent: render(page{
			Heading: issue.Subject(),
			Body:    Markdown(issue.Content()),
			Footer:  r.unsubscribeFooter(s.Email()),
		}),
		TextContent: issue.Content(),
		Kind:        KindNewsletter,
	}
}

// ContactReceived notifies the site owner; replies go to the sender.
func (r Renderer) ContactReceived(m domcontact.Message, adminEmail string) domain.Email {
	subject := m.Subject()
	if subject == "" {
		subject = "(no subject)"
	}
	body := template.HTML(fmt.Sprintf("<p><b>From:</b> %s &lt;%s&gt;</p><pre style=\"white-space:pre-wrap\">%s</pre>",
		template.HTMLEscapeString(m.Name()),
		template.HTMLEscapeString(m.Email()),
		template.HTMLEscapeString(m.Body())))
	return domain.Email{
		To:          adminEmail,
		Subject:     "Contact form: " + subject,
		HTMLContent: render(page{Heading: subject, Body: body}),
		TextContent: fmt.Sprintf("From: %s <%s>\n\n%s", m.Name(), m.Email(), m.Body()),
		ReplyTo:     m.Email(),
		Kind:        KindContact,
	}
}

// excerpt cuts markdown to roughly n bytes on a word boundary.
func excerpt(md string, n int) string {
	md = strings.TrimSpace(md)
	if len(md) <= n {
		return md
	}
	cut := strings.LastIndexByte(md[:n], ' ')
	if cut <= 0 {
		cut = n
	}
	return md[:cut] + "…"
}
