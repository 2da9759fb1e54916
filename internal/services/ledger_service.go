package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/honeynil/CreatorMonetizationService/internal/clock"
	"github.com/honeynil/CreatorMonetizationService/internal/fees"
	"github.com/honeynil/CreatorMonetizationService/internal/gateway"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/kafka"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/observability"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/redis"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
	"github.com/honeynil/CreatorMonetizationService/internal/repository"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=ledger_service.go -destination=mocks/mock_ledger_service.go -package=mocks

// LedgerService owns every one-off money movement: document purchases, tips
// and their refunds.
type LedgerService interface {
	InitiatePurchase(ctx context.Context, req PurchaseRequest) (*models.Transaction, error)
	InitiateTip(ctx context.Context, req TipRequest) (*models.Transaction, error)
	Finalize(ctx context.Context, transactionID int64, result gateway.ChargeResult) (*models.Transaction, error)
	FinalizeByProcessorRef(ctx context.Context, processorRef string, result gateway.ChargeResult) (*models.Transaction, error)
	ResumePending(ctx context.Context, processorRef string, initiatorID int64, paymentMethodRef string) (*models.Transaction, error)
	Refund(ctx context.Context, transactionID, initiatorID int64, reason string) (*models.Transaction, error)
	GetTransaction(ctx context.Context, transactionID, viewerID int64) (*models.Transaction, error)
	ListPurchases(ctx context.Context, buyerID int64, filter models.TransactionFilter) (*TransactionPage, error)
	ListSales(ctx context.Context, sellerID int64, filter models.TransactionFilter) (*TransactionPage, error)
}

type PurchaseRequest struct {
	BuyerID          int64
	DocumentID       int64
	Amount           decimal.Decimal
	IdempotencyKey   string
	PaymentMethodRef string
}

type TipRequest struct {
	SenderID         int64
	RecipientID      int64
	Amount           decimal.Decimal
	IdempotencyKey   string
	PaymentMethodRef string
	Tippable         *models.TippableRef
}

type TransactionPage struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Page         int                  `json:"page"`
	PerPage      int                  `json:"per_page"`
}

type ledgerService struct {
	transactionRepo repository.TransactionRepository
	documentRepo    repository.DocumentRepository
	userRepo        repository.UserRepository
	gateway         gateway.PaymentGateway
	calculator      *fees.Calculator
	cache           redis.RedisClient
	events          eventPublisher
	clock           clock.Clock
}

func NewLedgerService(
	transactionRepo repository.TransactionRepository,
	documentRepo repository.DocumentRepository,
	userRepo repository.UserRepository,
	paymentGateway gateway.PaymentGateway,
	calculator *fees.Calculator,
	cache redis.RedisClient,
	producer kafka.KafkaProducer,
	ledgerTopic string,
	clk clock.Clock,
) *ledgerService {
	return &ledgerService{
		transactionRepo: transactionRepo,
		documentRepo:    documentRepo,
		userRepo:        userRepo,
		gateway:         paymentGateway,
		calculator:      calculator,
		cache:           cache,
		events:          eventPublisher{producer: producer, topic: ledgerTopic},
		clock:           clk,
	}
}

func (s *ledgerService) InitiatePurchase(ctx context.Context, req PurchaseRequest) (*models.Transaction, error) {
	tracer := otel.Tracer("ledger-service")
	ctx, span := tracer.Start(ctx, "InitiatePurchase")
	defer span.End()
	span.SetAttributes(attribute.Int64("buyer_id", req.BuyerID), attribute.Int64("document_id", req.DocumentID))

	if req.IdempotencyKey == "" {
		span.SetStatus(codes.Error, "missing idempotency key")
		return nil, fmt.Errorf("%w: idempotency key is required", pkgerrors.ErrInvalidInput)
	}

	doc, err := s.documentRepo.GetByID(ctx, req.DocumentID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if doc.IsFree() {
		span.SetStatus(codes.Error, "document is free")
		return nil, fmt.Errorf("%w: document %d is free", pkgerrors.ErrInvalidAmount, doc.ID)
	}
	if !req.Amount.Equal(doc.Price) {
		span.SetStatus(codes.Error, "amount does not match price")
		return nil, fmt.Errorf("%w: amount %s does not match price %s", pkgerrors.ErrInvalidAmount, req.Amount.StringFixed(fees.Cents), doc.Price.StringFixed(fees.Cents))
	}
	if req.BuyerID == doc.OwnerID {
		span.SetStatus(codes.Error, "self purchase")
		return nil, pkgerrors.ErrSelfTransactionNotAllowed
	}

	fee, err := s.calculator.ComputeFee(req.Amount, models.TypeDocumentPurchase)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	buyer, err := s.userRepo.GetByID(ctx, req.BuyerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	documentID := doc.ID
	tx := &models.Transaction{
		BuyerID:      req.BuyerID,
		SellerID:     doc.OwnerID,
		DocumentID:   &documentID,
		ProcessorRef: req.IdempotencyKey,
		Amount:       req.Amount,
		PlatformFee:  fee,
		Status:       models.StatusPending,
		Type:         models.TypeDocumentPurchase,
	}
	return s.createAndCharge(ctx, tx, buyer.CustomerRef, req.PaymentMethodRef)
}

func (s *ledgerService) InitiateTip(ctx context.Context, req TipRequest) (*models.Transaction, error) {
	tracer := otel.Tracer("ledger-service")
	ctx, span := tracer.Start(ctx, "InitiateTip")
	defer span.End()
	span.SetAttributes(attribute.Int64("sender_id", req.SenderID), attribute.Int64("recipient_id", req.RecipientID))

	if req.IdempotencyKey == "" {
		span.SetStatus(codes.Error, "missing idempotency key")
		return nil, fmt.Errorf("%w: idempotency key is required", pkgerrors.ErrInvalidInput)
	}
	if req.Tippable != nil && !req.Tippable.Kind.IsValid() {
		span.SetStatus(codes.Error, "invalid tippable kind")
		return nil, fmt.Errorf("%w: unknown tippable kind %q", pkgerrors.ErrInvalidInput, req.Tippable.Kind)
	}
	if err := fees.ValidateAmount(req.Amount); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if req.SenderID == req.RecipientID {
		span.SetStatus(codes.Error, "self tip")
		return nil, pkgerrors.ErrSelfTransactionNotAllowed
	}

	recipient, err := s.userRepo.GetByID(ctx, req.RecipientID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !recipient.IsCreator {
		span.SetStatus(codes.Error, "recipient is not a creator")
		return nil, pkgerrors.ErrNotACreator
	}

	fee, err := s.calculator.ComputeFee(req.Amount, models.TypeTip)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	sender, err := s.userRepo.GetByID(ctx, req.SenderID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	tx := &models.Transaction{
		BuyerID:      req.SenderID,
		SellerID:     req.RecipientID,
		Tippable:     req.Tippable,
		ProcessorRef: req.IdempotencyKey,
		Amount:       req.Amount,
		PlatformFee:  fee,
		Status:       models.StatusPending,
		Type:         models.TypeTip,
	}
	return s.createAndCharge(ctx, tx, sender.CustomerRef, req.PaymentMethodRef)
}

func (s *ledgerService) createAndCharge(ctx context.Context, tx *models.Transaction, customerRef, paymentMethodRef string) (*models.Transaction, error) {
	id, err := s.transactionRepo.Create(ctx, tx)
	if err != nil {
		if stderrors.Is(err, pkgerrors.ErrDuplicateTransaction) {
			slog.Warn("duplicate transaction",
				"method", "createAndCharge",
				"processor_ref", tx.ProcessorRef)
		}
		return nil, err
	}
	tx.ID = id
	observability.LedgerTransactions.WithLabelValues(string(tx.Type), string(models.StatusPending)).Inc()

	slog.Info("transaction created",
		"method", "createAndCharge",
		"transaction_id", tx.ID,
		"type", tx.Type,
		"amount", tx.Amount.StringFixed(fees.Cents),
		"platform_fee", tx.PlatformFee.StringFixed(fees.Cents))

	return s.charge(ctx, tx, customerRef, paymentMethodRef)
}

// charge sends the pending transaction to the processor under its own
// idempotency key. An unknown outcome leaves the row pending; a decline
// finalizes it as failed and is returned alongside ErrPaymentDeclined.
func (s *ledgerService) charge(ctx context.Context, tx *models.Transaction, customerRef, paymentMethodRef string) (*models.Transaction, error) {
	result, err := s.gateway.Charge(ctx, gateway.ChargeRequest{
		IdempotencyKey:   tx.ProcessorRef,
		Amount:           tx.Amount,
		PaymentMethodRef: paymentMethodRef,
		CustomerRef:      customerRef,
		Metadata: map[string]string{
			"idempotency_key":  tx.ProcessorRef,
			"transaction_id":   strconv.FormatInt(tx.ID, 10),
			"transaction_type": string(tx.Type),
		},
	})
	if err != nil {
		slog.Warn("charge outcome unknown, transaction left pending",
			"method", "charge",
			"transaction_id", tx.ID,
			"processor_ref", tx.ProcessorRef,
			"error", err)
		return nil, fmt.Errorf("transaction %d left pending: %w", tx.ID, err)
	}

	updated, err := s.applyChargeResult(ctx, tx, *result)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return updated, fmt.Errorf("%w: %s", pkgerrors.ErrPaymentDeclined, result.FailureReason)
	}
	return updated, nil
}

func (s *ledgerService) Finalize(ctx context.Context, transactionID int64, result gateway.ChargeResult) (*models.Transaction, error) {
	tracer := otel.Tracer("ledger-service")
	ctx, span := tracer.Start(ctx, "Finalize")
	defer span.End()
	span.SetAttributes(attribute.Int64("transaction_id", transactionID))

	tx, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.finalize(ctx, tx, result)
}

func (s *ledgerService) FinalizeByProcessorRef(ctx context.Context, processorRef string, result gateway.ChargeResult) (*models.Transaction, error) {
	tracer := otel.Tracer("ledger-service")
	ctx, span := tracer.Start(ctx, "FinalizeByProcessorRef")
	defer span.End()
	span.SetAttributes(attribute.String("processor_ref", processorRef))

	tx, err := s.transactionRepo.GetByProcessorRef(ctx, processorRef)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.finalize(ctx, tx, result)
}

func (s *ledgerService) finalize(ctx context.Context, tx *models.Transaction, result gateway.ChargeResult) (*models.Transaction, error) {
	if tx.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: transaction %d is %s", pkgerrors.ErrInvalidStateTransition, tx.ID, tx.Status)
	}
	return s.applyChargeResult(ctx, tx, result)
}

// applyChargeResult moves a pending transaction to its terminal charge state.
// The repository guards the transition, so a concurrent finalize loses with
// ErrInvalidStateTransition.
func (s *ledgerService) applyChargeResult(ctx context.Context, tx *models.Transaction, result gateway.ChargeResult) (*models.Transaction, error) {
	if result.Success {
		updated, err := s.transactionRepo.MarkSucceeded(ctx, tx.ID, result.ProcessorRef, result.MethodDescriptor)
		if err != nil {
			slog.Error("failed to mark transaction succeeded",
				"method", "applyChargeResult",
				"transaction_id", tx.ID,
				"error", err)
			return nil, err
		}
		observability.LedgerTransactions.WithLabelValues(string(updated.Type), string(models.StatusSucceeded)).Inc()
		slog.Info("transaction succeeded",
			"method", "applyChargeResult",
			"transaction_id", updated.ID,
			"seller_earnings", updated.SellerEarnings().StringFixed(fees.Cents))

		invalidateRevenueReport(ctx, s.cache, updated.SellerID)
		s.events.publish(ctx, transactionEvent(models.EventTransactionSucceeded, updated, s.clock.Now()))
		return updated, nil
	}

	updated, err := s.transactionRepo.MarkFailed(ctx, tx.ID, result.ProcessorRef, result.FailureReason)
	if err != nil {
		slog.Error("failed to mark transaction failed",
			"method", "applyChargeResult",
			"transaction_id", tx.ID,
			"error", err)
		return nil, err
	}
	observability.LedgerTransactions.WithLabelValues(string(updated.Type), string(models.StatusFailed)).Inc()
	slog.Info("transaction declined",
		"method", "applyChargeResult",
		"transaction_id", updated.ID,
		"reason", result.FailureReason)

	s.events.publish(ctx, transactionEvent(models.EventTransactionFailed, updated, s.clock.Now()))
	return updated, nil
}

func (s *ledgerService) ResumePending(ctx context.Context, processorRef string, initiatorID int64, paymentMethodRef string) (*models.Transaction, error) {
	tracer := otel.Tracer("ledger-service")
	ctx, span := tracer.Start(ctx, "ResumePending")
	defer span.End()
	span.SetAttributes(attribute.String("processor_ref", processorRef))

	tx, err := s.transactionRepo.GetByProcessorRef(ctx, processorRef)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if tx.BuyerID != initiatorID {
		span.SetStatus(codes.Error, "not the buyer")
		return nil, pkgerrors.ErrUnauthorized
	}
	if tx.Status != models.StatusPending {
		span.SetStatus(codes.Error, "transaction not pending")
		return nil, fmt.Errorf("%w: transaction %d is %s", pkgerrors.ErrInvalidStateTransition, tx.ID, tx.Status)
	}

	buyer, err := s.userRepo.GetByID(ctx, tx.BuyerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.charge(ctx, tx, buyer.CustomerRef, paymentMethodRef)
}

func (s *ledgerService) Refund(ctx context.Context, transactionID, initiatorID int64, reason string) (*models.Transaction, error) {
	tracer := otel.Tracer("ledger-service")
	ctx, span := tracer.Start(ctx, "Refund")
	defer span.End()
	span.SetAttributes(attribute.Int64("transaction_id", transactionID), attribute.Int64("initiator_id", initiatorID))

	tx, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if tx.SellerID != initiatorID {
		span.SetStatus(codes.Error, "initiator is not the seller")
		return nil, pkgerrors.ErrUnauthorized
	}
	switch tx.Status {
	case models.StatusRefunded:
		span.SetStatus(codes.Error, "already refunded")
		return nil, pkgerrors.ErrAlreadyRefunded
	case models.StatusSucceeded:
	default:
		span.SetStatus(codes.Error, "not refundable")
		return nil, fmt.Errorf("%w: transaction %d is %s", pkgerrors.ErrNotRefundable, tx.ID, tx.Status)
	}
	if tx.ChargeRef == "" {
		span.SetStatus(codes.Error, "no processor charge")
		return nil, fmt.Errorf("%w: transaction %d has no processor charge", pkgerrors.ErrNotRefundable, tx.ID)
	}

	result, err := s.gateway.Refund(ctx, gateway.RefundRequest{
		IdempotencyKey: "refund-" + tx.ProcessorRef,
		ChargeRef:      tx.ChargeRef,
		Reason:         gateway.RefundReason(reason),
		Metadata: map[string]string{
			"transaction_id": strconv.FormatInt(tx.ID, 10),
		},
	})
	if err != nil {
		span.RecordError(err)
		slog.Warn("refund outcome unknown",
			"method", "Refund",
			"transaction_id", tx.ID,
			"error", err)
		return nil, err
	}
	if !result.Success {
		span.SetStatus(codes.Error, "refund declined")
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrPaymentDeclined, result.FailureReason)
	}

	updated, err := s.transactionRepo.MarkRefunded(ctx, tx.ID, reason, s.clock.Now())
	if err != nil {
		if stderrors.Is(err, pkgerrors.ErrInvalidStateTransition) {
			return nil, pkgerrors.ErrAlreadyRefunded
		}
		span.RecordError(err)
		slog.Error("failed to mark transaction refunded",
			"method", "Refund",
			"transaction_id", tx.ID,
			"error", err)
		return nil, err
	}
	observability.LedgerTransactions.WithLabelValues(string(updated.Type), string(models.StatusRefunded)).Inc()
	slog.Info("transaction refunded",
		"method", "Refund",
		"transaction_id", updated.ID,
		"reason", reason)

	invalidateRevenueReport(ctx, s.cache, updated.SellerID)
	s.events.publish(ctx, transactionEvent(models.EventTransactionRefunded, updated, s.clock.Now()))
	return updated, nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, transactionID, viewerID int64) (*models.Transaction, error) {
	tracer := otel.Tracer("ledger-service")
	ctx, span := tracer.Start(ctx, "GetTransaction")
	defer span.End()

	tx, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !tx.IsParticipant(viewerID) {
		span.SetStatus(codes.Error, "not a participant")
		return nil, pkgerrors.ErrUnauthorized
	}
	return tx, nil
}

func (s *ledgerService) ListPurchases(ctx context.Context, buyerID int64, filter models.TransactionFilter) (*TransactionPage, error) {
	tracer := otel.Tracer("ledger-service")
	ctx, span := tracer.Start(ctx, "ListPurchases")
	defer span.End()

	filter = filter.Normalize()
	txs, total, err := s.transactionRepo.ListByBuyer(ctx, buyerID, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &TransactionPage{Transactions: txs, Total: total, Page: filter.Page, PerPage: filter.PerPage}, nil
}

func (s *ledgerService) ListSales(ctx context.Context, sellerID int64, filter models.TransactionFilter) (*TransactionPage, error) {
	tracer := otel.Tracer("ledger-service")
	ctx, span := tracer.Start(ctx, "ListSales")
	defer span.End()

	filter = filter.Normalize()
	txs, total, err := s.transactionRepo.ListBySeller(ctx, sellerID, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &TransactionPage{Transactions: txs, Total: total, Page: filter.Page, PerPage: filter.PerPage}, nil
}
