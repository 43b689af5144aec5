package api

import (
	"time"

	"github.com/dmitrijs2005/grain/internal/logging"
)

const (
	AccountBindingName = "account"
	PhotosBindingName  = "photos"
)

// Settings is what New needs to build both bindings.
type Settings struct {
	AccountURL     string
	PhotosURL      string
	PhotosKey      string
	RequestTimeout time.Duration
	Logger         logging.Logger
}

// Bindings groups the two clients the app uses.
type Bindings struct {
	Account *Binding
	Photos  *Binding
}

// New builds the account and photo bindings. The photo key is installed as
// a creation-time Client-ID header.
func New(s Settings) *Bindings {
	log := s.Logger
	if log == nil {
		log = logging.Nop()
	}

	return &Bindings{
		Account: NewBinding(AccountBindingName, s.AccountURL,
			WithTimeout(s.RequestTimeout),
			WithLogger(log),
		),
		Photos: NewBinding(PhotosBindingName, s.PhotosURL,
			WithTimeout(s.RequestTimeout),
			WithLogger(log),
			WithHeader(HeaderAuthorization, "Client-ID "+s.PhotosKey),
		),
	}
}

// ClearCredentials removes default credentials from every binding.
func (b *Bindings) ClearCredentials() {
	b.Account.ClearCredentials()
	b.Photos.ClearCredentials()
}

// SetBearerToken installs the signed-in user's token on the account binding.
func (b *Bindings) SetBearerToken(token string) {
	b.Account.SetBearerToken(token)
}
