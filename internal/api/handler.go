package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/entity"
	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/service"
)

type Service interface {
	Authenticate(ctx context.Context, username, password string) (entity.Account, error)
	IssueToken(account entity.Account) (string, time.Time, error)
	AccountFromToken(ctx context.Context, token string) (entity.Account, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, in service.AccountInput) (entity.Account, error)

	CreateClient(ctx context.Context, in service.ClientInput) (entity.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, in service.ClientInput) (entity.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
	SearchClients(term string) []entity.Client

	CreateServiceOrder(ctx context.Context, in service.OrderInput) (entity.ServiceOrder, error)
	SetServiceOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (entity.ServiceOrder, error)
	OrderWithClient(ctx context.Context, id uuid.UUID) (entity.ServiceOrder, *entity.Client, error)
	OrdersView(term, status string) []service.OrderView

	Report(filter service.PeriodFilter) service.Report
	Finance() service.FinanceTotals

	NFSLink() string
	SetNFSLink(ctx context.Context, link string) error

	ExportBackup(ctx context.Context) entity.Backup
	ImportBackup(ctx context.Context, raw []byte) error
}

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{s: s}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok\n"))
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AccountResponse struct {
	ID          uuid.UUID          `json:"id"`
	Username    string             `json:"username"`
	AccessLevel entity.AccessLevel `json:"accessLevel"`
}

type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Account   AccountResponse `json:"account"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	account, err := h.s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	token, expiresAt, err := h.s.IssueToken(account)
	if err != nil {
		sendErr(ctx, w, http.StatusInternalServerError, err, entity.ErrMsgInternal)
		return
	}

	sendJSON(ctx, w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   toAccountResponse(account),
	})
}

func toAccountResponse(account entity.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		Username:    account.Username,
		AccessLevel: account.AccessLevel,
	}
}

// --- Clients ---

type ClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	CPF     string `json:"cpf"`
	CNPJ    string `json:"cnpj"`
	Notes   string `json:"notes"`
}

func (req *ClientRequest) toInput() service.ClientInput {
	return service.ClientInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		CPF:     req.CPF,
		CNPJ:    req.CNPJ,
		Notes:   req.Notes,
	}
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients := h.s.SearchClients(r.URL.Query().Get("search"))
	sendJSON(r.Context(), w, http.StatusOK, clients)
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	client, err := h.s.CreateClient(ctx, req.toInput())
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	sendJSON(ctx, w, http.StatusCreated, client)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	client, err := h.s.UpdateClient(ctx, id, req.toInput())
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	sendJSON(ctx, w, http.StatusOK, client)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	if err := h.s.DeleteClient(ctx, id); err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Service orders ---

type OrderRequest struct {
	ClientID  uuid.UUID          `json:"clientId"`
	Equipment string             `json:"equipment"`
	Problem   string             `json:"problem"`
	Status    entity.OrderStatus `json:"status"`
	Value     any                `json:"value"`
	Date      time.Time          `json:"date"`
	Notes     string             `json:"notes"`
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders := h.s.OrdersView(q.Get("search"), q.Get("status"))
	sendJSON(r.Context(), w, http.StatusOK, orders)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	order, err := h.s.CreateServiceOrder(ctx, service.OrderInput{
		ClientID:  req.ClientID,
		Equipment: req.Equipment,
		Problem:   req.Problem,
		Status:    req.Status,
		Value:     service.ParseValue(req.Value),
		Date:      req.Date,
		Notes:     req.Notes,
	})
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	sendJSON(ctx, w, http.StatusCreated, order)
}

type StatusRequest struct {
	Status entity.OrderStatus `json:"status"`
}

func (h *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	order, err := h.s.SetServiceOrderStatus(ctx, id, req.Status)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	sendJSON(ctx, w, http.StatusOK, order)
}

type PrintableOrderResponse struct {
	Order  entity.ServiceOrder `json:"order"`
	Client *entity.Client      `json:"client"`
}

// PrintOrder feeds the printable-document surface: one order plus its
// resolved client, nil when the client was deleted.
func (h *Handler) PrintOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	order, client, err := h.s.OrderWithClient(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	sendJSON(ctx, w, http.StatusOK, PrintableOrderResponse{Order: order, Client: client})
}

// --- Reports & finance ---

const dateLayout = "2006-01-02"

func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	period := service.Period(q.Get("period"))
	if period == "" {
		period = service.PeriodLast30Days
	}

	if !period.IsValid() {
		sendErr(ctx, w, http.StatusBadRequest, nil, entity.ErrMsgBadRequest)
		return
	}

	filter := service.PeriodFilter{Period: period}

	if period == service.PeriodCustom {
		// Unparsable or absent boundaries stay zero, which degrades the
		// custom filter to pass-through.
		if start, err := time.Parse(dateLayout, q.Get("start")); err == nil {
			filter.Start = start
		}

		if end, err := time.Parse(dateLayout, q.Get("end")); err == nil {
			filter.End = end
		}
	}

	sendJSON(ctx, w, http.StatusOK, h.s.Report(filter))
}

func (h *Handler) Finance(w http.ResponseWriter, r *http.Request) {
	sendJSON(r.Context(), w, http.StatusOK, h.s.Finance())
}

// --- Settings ---

type SettingsResponse struct {
	NFSLink string `json:"nfsLink"`
}

func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	sendJSON(r.Context(), w, http.StatusOK, SettingsResponse{NFSLink: h.s.NFSLink()})
}

type NFSLinkRequest struct {
	NFSLink string `json:"nfsLink"`
}

func (h *Handler) UpdateNFSLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req NFSLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	if err := h.s.SetNFSLink(ctx, req.NFSLink); err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	sendJSON(ctx, w, http.StatusOK, SettingsResponse{NFSLink: req.NFSLink})
}

type AccountUpdateRequest struct {
	Username        string             `json:"username"`
	Password        string             `json:"password"`
	ConfirmPassword string             `json:"confirmPassword"`
	AccessLevel     entity.AccessLevel `json:"accessLevel"`
}

// UpdateAccount edits the logged-in account in place. There is no account
// create or delete endpoint.
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	current, err := entity.AccountFromContext(ctx)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	var req AccountUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	account, err := h.s.UpdateAccount(ctx, current.ID, service.AccountInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AccessLevel:     req.AccessLevel,
	})
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	sendJSON(ctx, w, http.StatusOK, toAccountResponse(account))
}

// --- Backup / restore ---

func (h *Handler) Backup(w http.ResponseWriter, r *http.Request) {
	sendJSON(r.Context(), w, http.StatusOK, h.s.ExportBackup(r.Context()))
}

func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	if err := h.s.ImportBackup(ctx, raw); err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
