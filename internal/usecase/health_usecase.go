package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	transport string
	store     string
}

// NewHealthUsecase reports the mail transport and cooldown store in use.
func NewHealthUsecase(transport, store string) HealthUsecase {
	return &healthUsecase{transport: transport, store: store}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	return map[string]string{
		"status":         "ok",
		"mail_transport": u.transport,
		"cooldown_store": u.store,
	}
}
