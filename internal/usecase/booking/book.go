package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/backhomebarber/booking-api/internal/audit"
	"github.com/backhomebarber/booking-api/internal/cache"
	domain "github.com/backhomebarber/booking-api/internal/domain/appointment"
	"github.com/backhomebarber/booking-api/internal/httperr"
	"github.com/backhomebarber/booking-api/internal/models"
	"github.com/backhomebarber/booking-api/internal/payment"
	"github.com/backhomebarber/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	UserID    uint
	ShopID    uint
	BarberID  uint
	ServiceID uint

	Date string
	Time string

	Method payment.Method
	Notes  string

	// OnSession recebe a sessão de pagamento assim que o provedor
	// inicia, para o app seguir o fluxo (cartão, webview, deep link).
	OnSession func(*payment.Session)
}

// ======================================================
// USE CASE
// ======================================================

// Book sequencia: revalidar o slot, criar o agendamento
// pending/unpaid, rodar o pagamento e aplicar o estado final.
type Book struct {
	repo         domain.Repository
	orchestrator *payment.Orchestrator
	cache        *cache.Availability
	audit        *audit.Dispatcher
	log          zerolog.Logger
}

func NewBook(
	repo domain.Repository,
	orchestrator *payment.Orchestrator,
	availability *cache.Availability,
	auditDispatcher *audit.Dispatcher,
	log zerolog.Logger,
) *Book {
	return &Book{
		repo:         repo,
		orchestrator: orchestrator,
		cache:        availability,
		audit:        auditDispatcher,
		log:          log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute devolve o agendamento criado mesmo quando o pagamento
// falha: pagamento falho é estado retentável, não agendamento morto.
func (uc *Book) Execute(ctx context.Context, in BookInput) (*models.Appointment, error) {

	if !payment.ValidMethod(in.Method) {
		return nil, httperr.ErrBusiness("unsupported_method")
	}

	// --------------------------------------------------
	// 1️⃣ Barbearia / barbeiro / serviço
	// --------------------------------------------------
	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, httperr.ErrBusiness("shop_not_found")
	}

	barber, err := uc.repo.GetBarber(ctx, in.ShopID, in.BarberID)
	if err != nil || !barber.Active {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.ShopID, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone da barbearia
	// --------------------------------------------------
	loc := timezone.Location(shop.Timezone)

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3️⃣ Antecedência mínima
	// --------------------------------------------------
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4️⃣ Horário dentro do expediente
	// --------------------------------------------------
	hours := domain.HoursFromShop(shop)
	if !domain.SlotWithinHours(hours, in.Time) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 5️⃣ Criação com revalidação do slot (corrida perdida
	// falha aqui, antes de qualquer initiate de pagamento)
	// --------------------------------------------------
	shopID := in.ShopID
	ap := &models.Appointment{
		UserID:          in.UserID,
		ShopID:          &shopID,
		BarberID:        in.BarberID,
		ServiceID:       in.ServiceID,
		Date:            time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc),
		Time:            in.Time,
		Status:          string(domain.InitialStatus()),
		PaymentStatus:   string(domain.InitialPaymentStatus()),
		PaymentAmount:   service.Price,
		PaymentCurrency: service.Currency,
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointmentIfFree(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "slot_conflict") {
			uc.audit.Dispatch(audit.Event{
				ShopID:   &shopID,
				UserID:   &in.UserID,
				Action:   "appointment_conflict",
				Entity:   "appointment",
				Metadata: map[string]any{"date": in.Date, "time": in.Time, "barber_id": in.BarberID},
			})
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.BarberID, in.Date)

	uc.audit.Dispatch(audit.Event{
		ShopID:   &shopID,
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	// --------------------------------------------------
	// 6️⃣ Pagamento
	// --------------------------------------------------
	initiated := false
	outcome, payErr := uc.orchestrator.Run(ctx, payment.Request{
		Method:        in.Method,
		Amount:        service.Price,
		AppointmentID: ap.ID,
		OnSession: func(s *payment.Session) {
			initiated = true
			if in.OnSession != nil {
				in.OnSession(s)
			}
		},
	})

	// --------------------------------------------------
	// 7️⃣ Commit do estado final
	// --------------------------------------------------
	if err := uc.commit(ctx, ap, in.Method, outcome, initiated); err != nil {
		return ap, err
	}

	if payErr != nil {
		return ap, httperr.ErrBusiness(payment.BusinessCode(payErr))
	}

	return ap, nil
}

// commit aplica o Outcome no Appointment. paid sem referência do
// provedor nunca passa daqui.
func (uc *Book) commit(ctx context.Context, ap *models.Appointment, method payment.Method, outcome payment.Outcome, initiated bool) error {

	now := timezone.Now()
	if ap.Shop != nil {
		now = timezone.NowIn(ap.Shop.Timezone)
	}

	action := "payment_failed"

	switch {
	case outcome.PendingSettlement:
		if err := domain.ApplyPaymentPending(ap, string(method)); err != nil {
			return err
		}
		if err := domain.Confirm(ap, now); err != nil {
			return err
		}
		action = "payment_pending_settlement"

	case outcome.Success:
		if err := domain.ApplyPaymentSuccess(ap, string(method), outcome.ProviderReference); err != nil {
			// referência ausente: fica pendente/retentável
			uc.log.Error().
				Uint("appointment", ap.ID).
				Msg("payment success without provider reference, refusing commit")
			return httperr.ErrBusiness("server_rejected")
		}
		if err := domain.Confirm(ap, now); err != nil {
			return err
		}
		action = "payment_succeeded"

	default:
		// falha antes do initiate deixa unpaid: nenhum fluxo chegou a
		// começar. Dinheiro nunca marca failed: o acerto é presencial.
		if method != payment.MethodCash && initiated {
			if err := domain.ApplyPaymentFailure(ap, string(method)); err != nil {
				return err
			}
		}
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return httperr.ErrBusiness("server_rejected")
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   ap.ShopID,
		UserID:   &ap.UserID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"method":  string(method),
			"success": outcome.Success,
			"reason":  outcome.FailureReason,
		},
	})

	return nil
}
