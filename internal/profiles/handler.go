package profiles

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=profiles_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fitfuture/fitfuture/internal/db"
	"github.com/fitfuture/fitfuture/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type profilesRepo interface {
	Get(ctx context.Context, userID int) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
}

type Handler struct {
	repo profilesRepo
}

func NewHandler(repo profilesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, err := handler.repo.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get profile for user %d: %s", userID, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("marshal profile error: %s", err)
		http.Error(w, "marshal profile error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(profileJson))
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if contentType := r.Header.Get("Content-Type"); !strings.Contains(contentType, "application/json") {
		http.Error(w, "update profile failed, invalid content type", http.StatusBadRequest)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("update profile, unmarshal json params: %s", err)
		http.Error(w, "update profile failed", http.StatusBadRequest)
		return
	}

	profile := req.toProfile()
	if profile.UserID == 0 {
		profile.UserID = db.SeedUserID
	}

	if err := handler.repo.Update(r.Context(), &profile); err != nil {
		log.Errorf("failed to update profile for user %d: %s", profile.UserID, err)
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("marshal profile error: %s", err)
		http.Error(w, "updated, but failed to marshal response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(profileJson))
}

// updateProfileRequest tolerates age arriving as a number or as a string,
// the way mobile clients and web forms tend to send it. An age value that
// cannot be parsed is dropped rather than failing the whole update.
type updateProfileRequest struct {
	UserID           int             `json:"userId"`
	Age              json.RawMessage `json:"age"`
	Gender           *string         `json:"gender"`
	HeightCm         *float64        `json:"heightCm"`
	WeightKg         *float64        `json:"weightKg"`
	RestingHeartRate *float64        `json:"restingHeartRate"`
}

func (req *updateProfileRequest) toProfile() Profile {
	return Profile{
		UserID:           req.UserID,
		Age:              parseAge(req.Age),
		Gender:           req.Gender,
		HeightCm:         req.HeightCm,
		WeightKg:         req.WeightKg,
		RestingHeartRate: req.RestingHeartRate,
	}
}

func parseAge(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}
	ageStr := strings.Trim(string(raw), `"`)
	if ageStr == "null" || ageStr == "" {
		return nil
	}
	age, err := strconv.Atoi(strings.TrimSpace(ageStr))
	if err != nil {
		log.Tracef("update profile, age %q not a number, dropping it", ageStr)
		return nil
	}
	return &age
}

func userIDFromRequest(r *http.Request) (int, error) {
	vars := mux.Vars(r)
	userIDStr := vars["userId"]
	if userIDStr == "" {
		return db.SeedUserID, nil
	}
	userID, err := strconv.Atoi(userIDStr)
	if err != nil {
		return 0, errors.New("error, user id invalid")
	}
	return userID, nil
}
