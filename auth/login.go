package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/ncobase/taskdesk/ecode"
	"github.com/ncobase/taskdesk/logging/logger"
	"github.com/ncobase/taskdesk/net/client"
	"github.com/ncobase/taskdesk/net/resp"
	"github.com/ncobase/taskdesk/security/jwt"
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/ncobase/taskdesk/validator"
)

// Doer sends API requests; *client.Client implements it.
type Doer interface {
	Do(ctx context.Context, r *client.Request) (*resp.Envelope, error)
}

// LoginBody is the login form.
type LoginBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginUser is the user part of the login answer.
type loginUser struct {
	ID       structs.ID `json:"id"`
	UUID     structs.ID `json:"uuid"`
	Username string     `json:"username"`
}

// Authenticator signs users in and out.
type Authenticator struct {
	api   Doer
	path  string
	store *Store
}

// NewAuthenticator returns an authenticator posting to loginPath.
func NewAuthenticator(api Doer, loginPath string, store *Store) *Authenticator {
	return &Authenticator{api: api, path: loginPath, store: store}
}

// Store returns the credential store.
func (a *Authenticator) Store() *Store { return a.store }

// Login posts the form and starts a session. Field problems, local or
// reported by the server, come back as a *resp.Exception with Errors set.
func (a *Authenticator) Login(ctx context.Context, body *LoginBody) (*Credentials, error) {
	if errs := validator.ValidateStruct(body); len(errs) > 0 {
		return nil, &resp.Exception{
			Status:  ecode.ToHTTPStatus(ecode.ParamErr),
			Code:    ecode.ParamErr,
			Message: ecode.Text(ecode.ParamErr),
			Errors:  errs,
		}
	}

	env, err := a.api.Do(ctx, &client.Request{
		Method: http.MethodPost,
		Path:   a.path,
		Form:   url.Values{"username": {body.Username}, "password": {body.Password}},
		Public: true,
	})
	if err != nil {
		return nil, err
	}
	if env.AccessToken == "" {
		return nil, errors.New("login answer carries no access token")
	}

	var u loginUser
	if err := env.Into(&u); err != nil {
		return nil, err
	}
	creds := &Credentials{
		AccessToken: env.AccessToken,
		TokenType:   env.TokenType,
		User:        &structs.User{ID: structs.FirstID(u.ID, u.UUID), Username: u.Username},
	}
	if claims, err := jwt.Inspect(env.AccessToken); err == nil {
		creds.ExpiresAt = claims.ExpiresAt
		if creds.User.ID.IsZero() {
			creds.User.ID = structs.ID(claims.UserID)
		}
		if creds.User.Username == "" {
			creds.User.Username = claims.Username
		}
	} else {
		logger.Debugf(ctx, "access token is not a readable jwt: %v", err)
	}
	if creds.User.Username == "" {
		creds.User.Username = body.Username
	}

	if err := a.store.Init(creds); err != nil {
		return nil, err
	}
	logger.Infof(ctx, "signed in as %s", creds.User.Username)
	return a.store.Current(), nil
}

// Logout ends the session.
func (a *Authenticator) Logout(ctx context.Context) error {
	if err := a.store.Teardown(); err != nil {
		return err
	}
	logger.Infof(ctx, "signed out")
	return nil
}
