// Package auth manages the session of the signed in user.
//
// A Store holds the bearer token between an explicit Init on login and a
// Teardown on logout or when the API rejects a request. The store is the
// oauth2.TokenSource of the API client and its OnUnauthorized method is
// the client's 401/429 hook:
//
//	store := auth.NewStore(cfg.Session.CredentialsFile)
//	_ = store.Load()
//	api, _ := client.New(client.Options{
//	    BaseURL:        cfg.API.BaseURL,
//	    TokenSource:    store,
//	    OnUnauthorized: store.OnUnauthorized,
//	})
//	a := auth.NewAuthenticator(api, cfg.API.Endpoints.Login, store)
//	creds, err := a.Login(ctx, &auth.LoginBody{Username: "ann", Password: "..."})
package auth
