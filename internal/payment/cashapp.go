package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ===============================
// Cash App (deep link + confirmação manual)
// ===============================

const DefaultCashAppTimeout = 10 * time.Minute

// LinkOpener é a ponte com o aparelho: abrir o deep link ou cair
// para o compartilhamento. Dependência explícita para manter o
// provedor testável sem UI.
type LinkOpener interface {
	CanOpen(url string) bool
	Open(url string) error
	Share(message, url string) error
}

type CashAppProvider struct {
	opener  LinkOpener
	cashtag string
	timeout time.Duration
	log     zerolog.Logger
}

func NewCashAppProvider(opener LinkOpener, cashtag string, timeout time.Duration, log zerolog.Logger) *CashAppProvider {
	if timeout <= 0 {
		timeout = DefaultCashAppTimeout
	}
	return &CashAppProvider{
		opener:  opener,
		cashtag: cashtag,
		timeout: timeout,
		log:     log,
	}
}

func (p *CashAppProvider) Method() Method { return MethodCashApp }

// BuildDeepLink monta https://cash.app/$<cashtag>/<valor>.
// O "$" inicial do cashtag é removido antes da interpolação e o
// valor vai como decimal puro.
func BuildDeepLink(cashtag string, amount float64) string {
	tag := strings.TrimPrefix(cashtag, "$")
	return "https://cash.app/$" + tag + "/" + strconv.FormatFloat(amount, 'f', -1, 64)
}

// Initiate abre o deep link; se o Cash App não puder ser aberto,
// cai automaticamente para o compartilhamento do link em vez de
// devolver erro.
func (p *CashAppProvider) Initiate(ctx context.Context, amount float64, appointmentID uint) (*Session, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if p.cashtag == "" {
		return nil, fmt.Errorf("%w: shop has no cashtag", ErrProviderUnavailable)
	}

	link := BuildDeepLink(p.cashtag, amount)
	s := NewSession(MethodCashApp, appointmentID, amount)
	s.DeepLink = link

	opened := false
	if p.opener.CanOpen(link) {
		if err := p.opener.Open(link); err == nil {
			opened = true
		} else {
			p.log.Warn().Err(err).Str("session", s.ID).Msg("cash app deep link failed, sharing instead")
		}
	}

	if !opened {
		msg := fmt.Sprintf("Please send %s to %s on Cash App: %s", formatAmount(amount), p.cashtag, link)
		if err := p.opener.Share(msg, link); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}
		s.LinkShared = true
	}

	p.log.Info().
		Str("session", s.ID).
		Uint("appointment", appointmentID).
		Bool("shared", s.LinkShared).
		Msg("cash app payment started")

	return s, nil
}

// AwaitCompletion espera a atestação do próprio usuário: não existe
// callback do Cash App, então "Yes, Completed" vira um paid
// provisório, a ser reconciliado no servidor depois.
func (p *CashAppProvider) AwaitCompletion(ctx context.Context, s *Session) (Outcome, error) {
	defer s.resolve()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	for {
		select {
		case sig := <-s.signals:
			switch sig.Kind {
			case SignalCancel:
				return Outcome{FailureReason: ReasonUserCancelled}, ErrUserCancelled

			case SignalAttestation:
				if !sig.Confirmed {
					return Outcome{FailureReason: ReasonUserDeclined}, ErrUserDeclined
				}
				return Outcome{
					Success:           true,
					ProviderReference: "cashapp-" + uuid.NewString(),
				}, nil
			}

		case <-timer.C:
			return Outcome{FailureReason: ReasonTimeout}, ErrTimeout

		case <-ctx.Done():
			return Outcome{FailureReason: ReasonUserCancelled}, ErrUserCancelled
		}
	}
}

func (p *CashAppProvider) Cancel(s *Session) {
	if s == nil {
		return
	}
	s.Deliver(Signal{Kind: SignalCancel})
	s.resolve()
}

// ShareLinkOpener é a ponte padrão no servidor: o deep link é
// entregue ao app pela resposta da sessão, então aqui só registramos
// o caminho de compartilhamento.
type ShareLinkOpener struct {
	Log zerolog.Logger
}

func (o ShareLinkOpener) CanOpen(url string) bool { return false }

func (o ShareLinkOpener) Open(url string) error { return nil }

func (o ShareLinkOpener) Share(message, url string) error {
	o.Log.Info().Str("url", url).Msg("cash app link ready to share")
	return nil
}
