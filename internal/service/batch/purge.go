package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-reserva/internal/common/config"
	"github.com/uma-arai/sbcntr-reserva/internal/common/database"
	"github.com/uma-arai/sbcntr-reserva/internal/common/utils"
	"github.com/uma-arai/sbcntr-reserva/internal/model"
	"github.com/uma-arai/sbcntr-reserva/internal/repository"
)

// TaskNotifier は Step Functions へのタスク完了通知です。*sfn.Client が満たします
type TaskNotifier interface {
	SendTaskSuccess(ctx context.Context, params *sfn.SendTaskSuccessInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskSuccessOutput, error)
}

// PurgeResult は Step Functions へ返すバッチの出力です
type PurgeResult struct {
	Before       model.Date          `json:"before"`
	PurgedCount  int                 `json:"purged_count"`
	Reservations []model.Reservation `json:"reservations"`
}

// PurgeBatchService は過去日付の予約を削除するバッチ処理を担当します
type PurgeBatchService struct {
	db              *database.DB
	reservationRepo repository.ReservationRepository
	notifier        TaskNotifier
	cfg             *config.Config
	now             func() time.Time
}

// NewPurgeBatchService は新しいPurgeBatchServiceを作成します
func NewPurgeBatchService(cfg *config.Config, sfnClient *sfn.Client) (*PurgeBatchService, error) {
	db, err := database.NewDB(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	repoDB := &repository.DB{DB: db.DB}

	s := &PurgeBatchService{
		db:              db,
		reservationRepo: repository.NewReservationRepository(repoDB),
		cfg:             cfg,
		now:             time.Now,
	}
	// nil の *sfn.Client をインターフェースに入れると nil 判定できなくなる
	if sfnClient != nil {
		s.notifier = sfnClient
	}
	return s, nil
}

// Close は終了処理を行います
func (s *PurgeBatchService) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Run は今日より前の日付の予約を削除し、結果を Step Functions に通知します
func (s *PurgeBatchService) Run(ctx context.Context) error {
	ctx, seg := xray.BeginSubsegment(ctx, "PurgeBatchService.Run")
	if seg != nil {
		defer seg.Close(nil)
	}

	startTime := time.Now()
	today := s.today()

	purged, err := s.reservationRepo.DeleteBefore(ctx, today)
	if err != nil {
		return utils.GetStackWithError(fmt.Errorf("failed to purge reservations before %s: %w", today, err))
	}

	log.Printf("Purged %d reservations dated before %s", len(purged), today)
	for _, r := range purged {
		log.Printf("Purged reservation: %s", r.Line())
	}

	result := PurgeResult{Before: today, PurgedCount: len(purged), Reservations: purged}
	if err := s.sendTaskSuccess(ctx, result); err != nil {
		return utils.GetStackWithError(fmt.Errorf("failed to send task success: %w", err))
	}

	duration := time.Since(startTime)
	if seg != nil {
		if err := seg.AddMetadata("purged_count", len(purged)); err != nil {
			log.Printf("Failed to add purged_count metadata: %v", err)
		}
		if err := seg.AddMetadata("duration", duration.String()); err != nil {
			log.Printf("Failed to add duration metadata: %v", err)
		}
	}

	log.Printf("Purge batch process completed successfully. Duration: %v", duration)
	return nil
}

// today は予約のタイムゾーンでの今日の日付を返します
func (s *PurgeBatchService) today() model.Date {
	loc := s.cfg.Booking.Location
	if loc == nil {
		loc = time.Local
	}
	return model.DateOf(s.now().In(loc))
}

// sendTaskSuccess は、Step Functionsのタスク成功を通知します
func (s *PurgeBatchService) sendTaskSuccess(ctx context.Context, result PurgeResult) error {
	// ローカルの場合はStep Functionsの処理をスキップ
	if os.Getenv("ENV") == "LOCAL" || s.notifier == nil {
		log.Printf("Local environment detected. Skipping Step Functions task success notification")
		return nil
	}

	taskToken := s.cfg.SFN.TaskToken
	if taskToken == "" {
		return errors.New("SFN_TASK_TOKEN is not set in config")
	}

	output, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal purge result: %w", err)
	}

	_, err = s.notifier.SendTaskSuccess(ctx, &sfn.SendTaskSuccessInput{
		TaskToken: aws.String(taskToken),
		Output:    aws.String(string(output)),
	})
	if err != nil {
		return fmt.Errorf("failed to send task success: %w", err)
	}

	log.Printf("Successfully sent task success with output: %s", string(output))
	return nil
}
