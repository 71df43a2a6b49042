package helpers

import (
	"fmt"

	"github.com/oksasatya/todolist-auth/pkg/mailer"
	mailtpl "github.com/oksasatya/todolist-auth/pkg/mailer/templates"
)

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
}

// RenderJob resolves the final subject and bodies of a queued job.
// Jobs without a template are sent as-is.
func RenderJob(job *mailer.EmailJob) (subject, text, html string, err error) {
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", fmt.Errorf("job for %s has neither template nor subject with body", job.To)
		}
		return job.Subject, job.Text, job.HTML, nil
	}
	EnsureRecipientAndEmail(job)
	return mailtpl.Render(job.Template, job.Data)
}
