package sheets

import (
	"context"
	"io/fs"
	"time"

	"qrattend/internal/attendance"
	"qrattend/internal/auth"
	"qrattend/internal/credentials"
)

// Service runs the full submission: load credentials, sign an assertion,
// exchange it for a token and append the row. Nothing is cached between calls.
type Service struct {
	Assets          fs.FS
	CredentialsPath string
	Signer          *auth.Signer
	Exchanger       *auth.Exchanger
	Client          *Client
	Now             func() time.Time
}

// NewService wires a submission service.
func NewService(assets fs.FS, credentialsPath string, signer *auth.Signer, exchanger *auth.Exchanger, client *Client) *Service {
	return &Service{
		Assets:          assets,
		CredentialsPath: credentialsPath,
		Signer:          signer,
		Exchanger:       exchanger,
		Client:          client,
		Now:             time.Now,
	}
}

// Submit performs exactly one token exchange and, if it succeeds, one append.
// The first error aborts the submission.
func (s *Service) Submit(ctx context.Context, row attendance.Row) error {
	bundle, err := credentials.Load(s.Assets, s.CredentialsPath)
	if err != nil {
		return err
	}
	assertion, err := s.Signer.Sign(bundle, s.Now())
	if err != nil {
		return err
	}
	token, err := s.Exchanger.Exchange(ctx, assertion)
	if err != nil {
		return err
	}
	return s.Client.Append(ctx, token, row)
}
