package service

import "context"

// fakeAuthorizer is a canned-result authcache.Authorizer substitute,
// recording every call it receives.
type fakeAuthorizer struct {
	err   error
	calls []fakeAuthCall
}

type fakeAuthCall struct {
	token      string
	namespaces []string
	verb       string
}

func (a *fakeAuthorizer) IsAuthorized(_ context.Context, token string, namespaces []string, verb string) error {
	a.calls = append(a.calls, fakeAuthCall{token: token, namespaces: namespaces, verb: verb})
	return a.err
}
