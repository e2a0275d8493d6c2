package scheduler

import (
	"time"

	"github.com/pinbox-kr/pinbox-backend/internal/app/service"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// TopUpScheduler 방치된 충전 요청 만료 스케줄러
type TopUpScheduler struct {
	cron          *cron.Cron
	walletService service.WalletService
	expiry        time.Duration
}

// NewTopUpScheduler 충전 만료 스케줄러 생성. expiry는 승인 대기 요청을
// 만료 처리하기까지의 유예 시간이다.
func NewTopUpScheduler(walletService service.WalletService, expiry time.Duration) *TopUpScheduler {
	return &TopUpScheduler{
		cron:          cron.New(),
		walletService: walletService,
		expiry:        expiry,
	}
}

// Start 스케줄러 시작
func (s *TopUpScheduler) Start() error {
	// 매시 정각에 오래된 승인 대기 요청 만료 처리
	_, err := s.cron.AddFunc("0 * * * *", func() {
		logger.Info("Starting scheduled top-up expiry sweep", nil)

		expired, err := s.walletService.ExpirePendingTopUps(s.expiry)
		if err != nil {
			logger.Error("Failed to expire stale top-up requests", err)
			return
		}

		logger.Info("Top-up expiry sweep finished", map[string]interface{}{
			"expired": expired,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for top-up expiry", err)
		return err
	}

	s.cron.Start()
	logger.Info("Top-up scheduler started successfully (hourly)", nil)

	return nil
}

// Stop 스케줄러 중지
func (s *TopUpScheduler) Stop() {
	logger.Info("Stopping top-up scheduler...", nil)
	s.cron.Stop()
	logger.Info("Top-up scheduler stopped", nil)
}
