package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmailJob_Validate(t *testing.T) {
	require.NoError(t, EmailJob{To: "a@b.c", Template: "request_message"}.Validate())
	require.NoError(t, EmailJob{To: "a@b.c", HTML: "<p>hi</p>"}.Validate())
	require.ErrorIs(t, EmailJob{Template: "request_message"}.Validate(), ErrNoRecipient)
	require.ErrorIs(t, EmailJob{To: "a@b.c", Subject: "only a subject"}.Validate(), ErrNoContent)
}
