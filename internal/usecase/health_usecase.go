package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	redisCheck func(ctx context.Context) string
}

// NewHealthUsecase reports process liveness plus the rate-limit store state
// ("ok", "disabled" or "error"). A nil redisCheck reports "disabled".
func NewHealthUsecase(redisCheck func(ctx context.Context) string) HealthUsecase {
	return &healthUsecase{redisCheck: redisCheck}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	redisStatus := "disabled"
	if u.redisCheck != nil {
		redisStatus = u.redisCheck(ctx)
	}
	return map[string]string{
		"status": "ok",
		"redis":  redisStatus,
	}
}
