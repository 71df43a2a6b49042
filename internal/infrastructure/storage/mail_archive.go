package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/todolist-auth/pkg/helpers"
	"github.com/oksasatya/todolist-auth/pkg/mailer"
)

// MailArchive stores a JSON copy of every sent mail in a GCS bucket,
// under mails/YYYY/MM/DD/<uuid>.json.
type MailArchive struct {
	Client *gcs.Client
	Bucket string
}

func NewMailArchive(client *gcs.Client, bucket string) *MailArchive {
	return &MailArchive{Client: client, Bucket: bucket}
}

func ObjectPath(m mailer.SentMail) string {
	return path.Join("mails", m.SentAt.UTC().Format("2006/01/02"), uuid.NewString()+".json")
}

func (a *MailArchive) Archive(ctx context.Context, m mailer.SentMail) (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return helpers.UploadObject(ctx, a.Client, a.Bucket, ObjectPath(m), "application/json", bytes.NewReader(b))
}
