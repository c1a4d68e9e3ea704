package trip

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/db"
	"github.com/triptogether/triptogether/invites"
	"github.com/triptogether/triptogether/trips"
)

// TripRessource bundles everything a trip carries: the core resource,
// members, invites, itinerary, budget, packing, outfits, messages and
// photos.
// Every route requires a session, the services do the per-trip
// membership checks.
type TripRessource struct {
	log           *zap.Logger
	tripService   *trips.Service
	inviteService *invites.Service
	validate      *validator.Validate
}

func NewTripRessource(
	log *zap.Logger,
	tripService *trips.Service,
	inviteService *invites.Service,
	validate *validator.Validate,
) *TripRessource {
	return &TripRessource{
		log:           log,
		tripService:   tripService,
		inviteService: inviteService,
		validate:      validate,
	}
}

func (t *TripRessource) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(jwtauth.Authenticator)

	r.Post("/", t.createTrip)
	r.Get("/", t.listTrips)

	r.Route("/{tripID}", func(tr chi.Router) {
		tr.Get("/", t.getTrip)
		tr.Put("/", t.updateTrip)
		tr.Delete("/", t.deleteTrip)

		tr.Get("/members", t.listMembers)
		tr.Delete("/members/{userID}", t.removeMember)
		tr.Put("/members/{userID}/role", t.setMemberRole)
		tr.Put("/rsvp", t.setRSVP)

		tr.Post("/invites", t.issueInvite)
		tr.Get("/invites", t.listInvites)
		tr.Delete("/invites/{inviteID}", t.revokeInvite)

		tr.Get("/itinerary", t.getItinerary)
		tr.Post("/itinerary", t.addItineraryItem)
		tr.Put("/itinerary/{itemID}", t.updateItineraryItem)
		tr.Delete("/itinerary/{itemID}", t.deleteItineraryItem)

		tr.Get("/budget", t.getBudget)
		tr.Post("/budget", t.addBudgetItem)
		tr.Put("/budget/{itemID}", t.updateBudgetItem)
		tr.Delete("/budget/{itemID}", t.deleteBudgetItem)

		tr.Get("/packing", t.getPacking)
		tr.Post("/packing", t.addPackingItem)
		tr.Put("/packing/{itemID}/checked", t.checkPackingItem)
		tr.Delete("/packing/{itemID}", t.deletePackingItem)

		tr.Get("/outfits", t.getOutfits)
		tr.Post("/outfits", t.addOutfit)
		tr.Put("/outfits/{outfitID}", t.updateOutfit)
		tr.Delete("/outfits/{outfitID}", t.deleteOutfit)

		tr.Get("/messages", t.listMessages)
		tr.Post("/messages", t.postMessage)

		tr.Get("/photos", t.listPhotos)
		tr.Post("/photos", t.addPhoto)
		tr.Delete("/photos/{photoID}", t.deletePhoto)
	})
	return r
}

func sessionUserID(r *http.Request) (uuid.UUID, error) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return uuid.UUID{}, err
	}
	return uuid.Parse(token.Subject())
}

func urlUUID(r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	return id, err == nil
}

// serviceError translates domain failures to http, everything the
// services did not classify is a 500
func (t *TripRessource) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr validator.ValidationErrors
	switch {
	case errors.Is(err, trips.ErrNotTripMember),
		errors.Is(err, trips.ErrTripDoesNotExist),
		errors.Is(err, trips.ErrItemDoesNotExist),
		errors.Is(err, db.ErrNotFound):
		// non-members get the same answer as a missing trip
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
	case errors.Is(err, trips.ErrNotTripAdmin), errors.Is(err, invites.ErrNotTripAdmin):
		_ = render.Render(w, r, createError("trip admin required", http.StatusForbidden))
	case errors.Is(err, invites.ErrAlreadyMember):
		_ = render.Render(w, r, createError(err.Error(), http.StatusConflict))
	case errors.Is(err, invites.ErrAlreadyInvited):
		_ = render.Render(w, r, createError(err.Error(), http.StatusConflict))
	case errors.Is(err, invites.ErrInviteInvalid):
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
	case errors.Is(err, trips.ErrInvalidDateRange),
		errors.Is(err, trips.ErrEmptyContent),
		errors.As(err, &verr):
		_ = render.Render(w, r, createError(err.Error(), http.StatusUnprocessableEntity))
	default:
		t.log.Error("trip request failed", zap.Error(err))
		_ = render.Render(w, r, createError("internal error", http.StatusInternalServerError))
	}
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		_ = render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return false
	}
	return true
}

func (t *TripRessource) createTrip(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	var req tripRequest
	if !decode(w, r, &req) {
		return
	}
	id, err := t.tripService.Create(r.Context(), userID, trips.TripInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &createdResponse{ID: id})
}

func (t *TripRessource) listTrips(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	list, err := t.tripService.Trips(r.Context(), userID)
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	resp := make([]render.Renderer, 0, len(list))
	for _, entry := range list {
		resp = append(resp, tripFromTable(entry))
	}
	_ = render.RenderList(w, r, resp)
}

func (t *TripRessource) getTrip(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	trip, err := t.tripService.Trip(r.Context(), tripID, userID)
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, tripDetailFromDomain(trip))
}

func (t *TripRessource) updateTrip(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req tripRequest
	if !decode(w, r, &req) {
		return
	}
	err = t.tripService.Update(r.Context(), tripID, userID, trips.TripInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) deleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	if err := t.tripService.Delete(r.Context(), tripID, userID); err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) listMembers(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	members, err := t.tripService.Members(r.Context(), tripID, userID)
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	resp := make([]render.Renderer, 0, len(members))
	for _, m := range members {
		resp = append(resp, memberFromData(m))
	}
	_ = render.RenderList(w, r, resp)
}

func (t *TripRessource) removeMember(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	memberID, ok := urlUUID(r, "userID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	if err := t.tripService.RemoveMember(r.Context(), tripID, memberID, userID); err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) setMemberRole(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	memberID, ok := urlUUID(r, "userID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req roleRequest
	if !decode(w, r, &req) {
		return
	}
	if err := t.tripService.SetMemberRole(r.Context(), tripID, memberID, req.Role, userID); err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) setRSVP(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req rsvpRequest
	if !decode(w, r, &req) {
		return
	}
	if err := t.tripService.SetRSVP(r.Context(), tripID, userID, req.Status); err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) issueInvite(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req issueInviteRequest
	if !decode(w, r, &req) {
		return
	}
	if err := t.validate.Struct(&req); err != nil {
		_ = render.Render(w, r, createError(err.Error(), http.StatusUnprocessableEntity))
		return
	}
	invite, err := t.inviteService.Issue(r.Context(), tripID, req.Email, userID)
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &issuedInviteResponse{
		inviteResponse: *inviteFromTable(invite),
		Token:          invite.Token,
	})
}

func (t *TripRessource) listInvites(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	list, err := t.inviteService.List(r.Context(), tripID, userID)
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	resp := make([]render.Renderer, 0, len(list))
	for _, entry := range list {
		resp = append(resp, inviteFromTable(entry))
	}
	_ = render.RenderList(w, r, resp)
}

func (t *TripRessource) revokeInvite(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	inviteID, ok := urlUUID(r, "inviteID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	if err := t.inviteService.Revoke(r.Context(), inviteID, userID); err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) getItinerary(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	days, err := t.tripService.Itinerary(r.Context(), tripID, userID)
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	resp := make([]render.Renderer, 0, len(days))
	for _, day := range days {
		resp = append(resp, itineraryDayFromDomain(day))
	}
	_ = render.RenderList(w, r, resp)
}

func (t *TripRessource) addItineraryItem(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req itineraryItemRequest
	if !decode(w, r, &req) {
		return
	}
	id, err := t.tripService.AddItineraryItem(r.Context(), tripID, userID, trips.ItineraryItemInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
	})
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &createdResponse{ID: id})
}

func (t *TripRessource) updateItineraryItem(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	itemID, ok := urlUUID(r, "itemID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req itineraryItemRequest
	if !decode(w, r, &req) {
		return
	}
	err = t.tripService.UpdateItineraryItem(r.Context(), tripID, itemID, userID, trips.ItineraryItemInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
	})
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) deleteItineraryItem(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	itemID, ok := urlUUID(r, "itemID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	if err := t.tripService.DeleteItineraryItem(r.Context(), tripID, itemID, userID); err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) getBudget(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	items, summary, err := t.tripService.Budget(r.Context(), tripID, userID)
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, budgetFromDomain(items, summary))
}

func (t *TripRessource) addBudgetItem(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req budgetItemRequest
	if !decode(w, r, &req) {
		return
	}
	id, err := t.tripService.AddBudgetItem(r.Context(), tripID, userID, trips.BudgetItemInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		PaidBy:      req.PaidBy,
		Paid:        req.Paid,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &createdResponse{ID: id})
}

func (t *TripRessource) updateBudgetItem(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	itemID, ok := urlUUID(r, "itemID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req budgetItemRequest
	if !decode(w, r, &req) {
		return
	}
	err = t.tripService.UpdateBudgetItem(r.Context(), tripID, itemID, userID, trips.BudgetItemInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		PaidBy:      req.PaidBy,
		Paid:        req.Paid,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) deleteBudgetItem(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	itemID, ok := urlUUID(r, "itemID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	if err := t.tripService.DeleteBudgetItem(r.Context(), tripID, itemID, userID); err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) getPacking(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	items, progress, err := t.tripService.Packing(r.Context(), tripID, userID)
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, packingFromDomain(items, progress))
}

func (t *TripRessource) addPackingItem(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req packingItemRequest
	if !decode(w, r, &req) {
		return
	}
	id, err := t.tripService.AddPackingItem(r.Context(), tripID, userID, trips.PackingItemInput{
		Item:       req.Item,
		Category:   req.Category,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &createdResponse{ID: id})
}

func (t *TripRessource) checkPackingItem(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	itemID, ok := urlUUID(r, "itemID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req packingCheckRequest
	if !decode(w, r, &req) {
		return
	}
	if err := t.tripService.SetPackingItemChecked(r.Context(), tripID, itemID, userID, req.Checked); err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) deletePackingItem(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	itemID, ok := urlUUID(r, "itemID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	if err := t.tripService.DeletePackingItem(r.Context(), tripID, itemID, userID); err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) getOutfits(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	items, summary, err := t.tripService.Outfits(r.Context(), tripID, userID)
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, outfitsFromDomain(items, summary))
}

func (t *TripRessource) addOutfit(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req outfitRequest
	if !decode(w, r, &req) {
		return
	}
	id, err := t.tripService.AddOutfit(r.Context(), tripID, userID, trips.OutfitInput{
		EventID:     req.EventID,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &createdResponse{ID: id})
}

func (t *TripRessource) updateOutfit(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	outfitID, ok := urlUUID(r, "outfitID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req outfitRequest
	if !decode(w, r, &req) {
		return
	}
	err = t.tripService.UpdateOutfit(r.Context(), tripID, outfitID, userID, trips.OutfitInput{
		EventID:     req.EventID,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) deleteOutfit(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	outfitID, ok := urlUUID(r, "outfitID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	if err := t.tripService.DeleteOutfit(r.Context(), tripID, outfitID, userID); err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func (t *TripRessource) listMessages(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	opts := listOptions(r)
	messages, err := t.tripService.Messages(r.Context(), tripID, userID, opts)
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	resp := make([]render.Renderer, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, messageFromTable(m))
	}
	_ = render.RenderList(w, r, resp)
}

func (t *TripRessource) postMessage(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req messageRequest
	if !decode(w, r, &req) {
		return
	}
	id, err := t.tripService.PostMessage(r.Context(), tripID, userID, req.Content)
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &createdResponse{ID: id})
}

func (t *TripRessource) listPhotos(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	photos, err := t.tripService.Photos(r.Context(), tripID, userID)
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	resp := make([]render.Renderer, 0, len(photos))
	for _, p := range photos {
		resp = append(resp, photoFromTable(p))
	}
	_ = render.RenderList(w, r, resp)
}

func (t *TripRessource) addPhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	var req photoRequest
	if !decode(w, r, &req) {
		return
	}
	if err := t.validate.Struct(&req); err != nil {
		_ = render.Render(w, r, createError(err.Error(), http.StatusUnprocessableEntity))
		return
	}
	id, err := t.tripService.AddPhoto(r.Context(), tripID, userID, req.URL, req.Caption)
	if err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &createdResponse{ID: id})
}

func (t *TripRessource) deletePhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	tripID, ok := urlUUID(r, "tripID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	photoID, ok := urlUUID(r, "photoID")
	if !ok {
		_ = render.Render(w, r, createError("not found", http.StatusNotFound))
		return
	}
	if err := t.tripService.DeletePhoto(r.Context(), tripID, photoID, userID); err != nil {
		t.serviceError(w, r, err)
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true})
}

func listOptions(r *http.Request) db.ListOptions {
	opts := db.ListOptions{Page: 1, PageSize: 50}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		opts.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 200 {
		opts.PageSize = v
	}
	return opts
}
