// Package templates provides email template components
package templates

import (
	"bytes"
	"html/template"
	"log"
)

// ProspectAlertProps carries the fields rendered into the prospect alert email.
type ProspectAlertProps struct {
	VisitorID     string
	CampaignTitle string
	Room          string
	MatchedPages  []string
	DashboardURL  string
}

var prospectAlertTemplate = template.Must(template.New("prospectAlert").Parse(`
<h2 style="font-family: Helvetica, sans-serif; font-size: 20px; margin: 0; margin-bottom: 16px;">New prospect on {{.CampaignTitle}}</h2>
<p style="font-family: Helvetica, sans-serif; font-size: 16px; margin: 0; margin-bottom: 16px;">
  Visitor <strong>{{.VisitorID}}</strong> reached the <strong>{{.Room}}</strong> room.
</p>
{{if .MatchedPages}}
<p style="font-family: Helvetica, sans-serif; font-size: 16px; margin: 0; margin-bottom: 8px;">Matched pages:</p>
<ul style="font-family: Helvetica, sans-serif; font-size: 14px; margin: 0; margin-bottom: 16px;">
  {{range .MatchedPages}}<li>{{.}}</li>{{end}}
</ul>
{{end}}
{{if .DashboardURL}}
<p style="font-family: Helvetica, sans-serif; font-size: 16px; margin: 0;">
  <a href="{{.DashboardURL}}" target="_blank" style="color: #0867ec;">Open the attribution dashboard</a>
</p>
{{end}}`))

// GetProspectAlertContent renders the body of the prospect promotion alert.
func GetProspectAlertContent(props ProspectAlertProps) string {
	var buf bytes.Buffer
	if err := prospectAlertTemplate.Execute(&buf, props); err != nil {
		log.Printf("Error executing prospect alert template: %v", err)
		return ""
	}
	return buf.String()
}
