package entity

import "context"

type (
	CtxKeyLogger  struct{}
	CtxKeyAccount struct{}
)

func AccountFromContext(ctx context.Context) (Account, error) {
	account, ok := ctx.Value(CtxKeyAccount{}).(Account)
	if !ok {
		return Account{}, ErrUnauthorized
	}

	return account, nil
}

func SetAccountToContext(ctx context.Context, account Account) context.Context {
	return context.WithValue(ctx, CtxKeyAccount{}, account)
}
