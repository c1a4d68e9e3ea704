package trip

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/triptogether/triptogether/db"
	"github.com/triptogether/triptogether/db/tables"
	"github.com/triptogether/triptogether/trips"
)

type tripRequest struct {
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type tripResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (*tripResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func tripFromTable(t *tables.TripTable) *tripResponse {
	return &tripResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type hostResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

type tripDetailResponse struct {
	tripResponse
	Host hostResponse `json:"host"`
}

func (*tripDetailResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func tripDetailFromDomain(t *db.TripWithHost) *tripDetailResponse {
	return &tripDetailResponse{
		tripResponse: *tripFromTable(&t.Trip),
		Host: hostResponse{
			ID:        t.HostID,
			Email:     t.HostEmail,
			FullName:  t.HostFullName,
			AvatarURL: t.HostAvatarURL,
		},
	}
}

type memberResponse struct {
	UserID      uuid.UUID  `json:"user_id"`
	Email       string     `json:"email"`
	FullName    *string    `json:"full_name,omitempty"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	Role        string     `json:"role"`
	RSVPStatus  string     `json:"rsvp_status"`
	InvitedAt   time.Time  `json:"invited_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

func (*memberResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func memberFromData(m *db.TripMemberData) *memberResponse {
	return &memberResponse{
		UserID:      m.UserID,
		Email:       m.Email,
		FullName:    m.FullName,
		AvatarURL:   m.AvatarURL,
		Role:        m.Role,
		RSVPStatus:  m.RSVPStatus,
		InvitedAt:   m.InvitedAt,
		RespondedAt: m.RespondedAt,
	}
}

type roleRequest struct {
	Role string `json:"role"`
}

type rsvpRequest struct {
	Status string `json:"status"`
}

type issueInviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type inviteResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (*inviteResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func inviteFromTable(i *tables.InviteTokenTable) *inviteResponse {
	return &inviteResponse{
		ID:        i.ID,
		Email:     i.Email,
		ExpiresAt: i.ExpiresAt,
		UsedAt:    i.UsedAt,
		CreatedAt: i.CreatedAt,
	}
}

// issuedInviteResponse is the one place the raw token leaves the
// service, the admin passes it on out of band if mail is disabled
type issuedInviteResponse struct {
	inviteResponse
	Token string `json:"token"`
}

func (*issuedInviteResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusCreated)
	return nil
}

type itineraryItemRequest struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	Time        *string   `json:"time"`
	Location    *string   `json:"location"`
}

type itineraryItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Time        *string   `json:"time,omitempty"`
	Location    *string   `json:"location,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by"`
}

type itineraryDayResponse struct {
	Date  time.Time                `json:"date"`
	Items []*itineraryItemResponse `json:"items"`
}

func (*itineraryDayResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func itineraryDayFromDomain(d trips.ItineraryDay) *itineraryDayResponse {
	day := &itineraryDayResponse{
		Date:  d.Date,
		Items: make([]*itineraryItemResponse, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		day.Items = append(day.Items, &itineraryItemResponse{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
			Date:        it.Date,
			Time:        it.Time,
			Location:    it.Location,
			CreatedBy:   it.CreatedBy,
		})
	}
	return day
}

type budgetItemRequest struct {
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	PaidBy      *uuid.UUID `json:"paid_by"`
	Paid        bool       `json:"paid"`
	ReceiptURL  *string    `json:"receipt_url"`
}

type budgetItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	PaidBy      *uuid.UUID `json:"paid_by,omitempty"`
	Paid        bool       `json:"paid"`
	ReceiptURL  *string    `json:"receipt_url,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by"`
}

type budgetResponse struct {
	Items   []*budgetItemResponse `json:"items"`
	Summary trips.BudgetSummary   `json:"summary"`
}

func (*budgetResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func budgetFromDomain(items []*tables.BudgetItemTable, summary trips.BudgetSummary) *budgetResponse {
	resp := &budgetResponse{
		Items:   make([]*budgetItemResponse, 0, len(items)),
		Summary: summary,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, &budgetItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Amount:      it.Amount,
			Category:    it.Category,
			PaidBy:      it.PaidBy,
			Paid:        it.Paid,
			ReceiptURL:  it.ReceiptURL,
			CreatedBy:   it.CreatedBy,
		})
	}
	return resp
}

type packingItemRequest struct {
	Item       string     `json:"item"`
	Category   string     `json:"category"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
}

type packingCheckRequest struct {
	Checked bool `json:"checked"`
}

type packingItemResponse struct {
	ID         uuid.UUID  `json:"id"`
	Item       string     `json:"item"`
	Category   string     `json:"category"`
	AssignedTo *uuid.UUID `json:"assigned_to,omitempty"`
	Checked    bool       `json:"checked"`
	CreatedBy  uuid.UUID  `json:"created_by"`
}

type packingResponse struct {
	Items    []*packingItemResponse `json:"items"`
	Progress trips.PackingProgress  `json:"progress"`
}

func (*packingResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func packingFromDomain(items []*tables.PackingItemTable, progress trips.PackingProgress) *packingResponse {
	resp := &packingResponse{
		Items:    make([]*packingItemResponse, 0, len(items)),
		Progress: progress,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, &packingItemResponse{
			ID:         it.ID,
			Item:       it.Item,
			Category:   it.Category,
			AssignedTo: it.AssignedTo,
			Checked:    it.Checked,
			CreatedBy:  it.CreatedBy,
		})
	}
	return resp
}

type outfitRequest struct {
	EventID     uuid.UUID `json:"event_id"`
	Description *string   `json:"description"`
	PhotoURL    *string   `json:"photo_url"`
}

type outfitResponse struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	UserID      uuid.UUID `json:"user_id"`
	Description *string   `json:"description,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type outfitsResponse struct {
	Items   []*outfitResponse   `json:"items"`
	Summary trips.OutfitSummary `json:"summary"`
}

func (*outfitsResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func outfitsFromDomain(items []*tables.OutfitTable, summary trips.OutfitSummary) *outfitsResponse {
	resp := &outfitsResponse{
		Items:   make([]*outfitResponse, 0, len(items)),
		Summary: summary,
	}
	for _, o := range items {
		resp.Items = append(resp.Items, &outfitResponse{
			ID:          o.ID,
			EventID:     o.EventID,
			UserID:      o.UserID,
			Description: o.Description,
			PhotoURL:    o.PhotoURL,
			CreatedAt:   o.CreatedAt,
		})
	}
	return resp
}

type messageRequest struct {
	Content string `json:"content"`
}

type messageResponse struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

func (*messageResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func messageFromTable(m *tables.MessageTable) *messageResponse {
	return &messageResponse{
		ID:      m.ID,
		UserID:  m.UserID,
		Content: m.Content,
		SentAt:  m.SentAt,
	}
}

type photoRequest struct {
	URL     string  `json:"url" validate:"required,url"`
	Caption *string `json:"caption"`
}

type photoResponse struct {
	ID         uuid.UUID `json:"id"`
	URL        string    `json:"url"`
	Caption    *string   `json:"caption,omitempty"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func (*photoResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func photoFromTable(p *tables.PhotoTable) *photoResponse {
	return &photoResponse{
		ID:         p.ID,
		URL:        p.URL,
		Caption:    p.Caption,
		UploadedBy: p.UploadedBy,
		UploadedAt: p.UploadedAt,
	}
}

type createdResponse struct {
	ID uuid.UUID `json:"id"`
}

func (*createdResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusCreated)
	return nil
}

type genericSuccessResponse struct {
	Success bool `json:"success"`
}

func (*genericSuccessResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func createError(err string, status int) *genericErrorResponse {
	return &genericErrorResponse{
		Error:      err,
		StatusCode: status,
	}
}

type genericErrorResponse struct {
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"-"`
}

func (e *genericErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}
