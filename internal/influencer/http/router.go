package http

import (
	"net/http"
	"strings"
	"time"

	commonhttp "github.com/influmatch/backend/internal/common/http"
	"github.com/influmatch/backend/internal/common/logger"
	"github.com/influmatch/backend/internal/influencer/domain"
	"github.com/influmatch/backend/internal/influencer/service"
)

type influencerRequest struct {
	Name     string   `json:"influencer_name"`
	ImageURL *string  `json:"image_url,omitempty"`
	Score    *float64 `json:"score,omitempty"`
}

type socialMediaRequest struct {
	Platform       string `json:"platform"`
	URL            string `json:"url"`
	FollowersCount *int64 `json:"followers_count,omitempty"`
}

type influencerResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"influencer_name"`
	ImageURL  *string  `json:"image_url,omitempty"`
	Score     *float64 `json:"score,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
}

type socialMediaResponse struct {
	ID             string `json:"id"`
	InfluencerID   string `json:"influencer_id"`
	Platform       string `json:"platform"`
	URL            string `json:"url"`
	FollowersCount *int64 `json:"followers_count,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

type Handler struct {
	influencers service.Service
	errors      *commonhttp.ErrorHandler
	log         *logger.Logger
	timeout     time.Duration
	listLimit   int
}

func NewHandler(influencers service.Service, requestTimeout time.Duration, listLimit int, log *logger.Logger) http.Handler {
	h := &Handler{
		influencers: influencers,
		errors:      commonhttp.NewErrorHandler(log),
		log:         log,
		timeout:     requestTimeout,
		listLimit:   listLimit,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/influencers", commonhttp.WithTimeout(h.timeout)(h.collection))
	mux.HandleFunc("/influencers/", commonhttp.WithTimeout(h.timeout)(h.item))
	return mux
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

// item dispatches /influencers/{id} and /influencers/{id}/social-media.
func (h *Handler) item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/influencers/")
	parts := strings.Split(rest, "/")

	if len(parts) == 0 || parts[0] == "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPath, "invalid path", nil, "")
		return
	}

	id := parts[0]
	if err := commonhttp.ValidateUUID(id); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidIDFormat, "invalid influencer id", nil, "")
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
			return
		}
		h.get(w, r, id)
		return
	}

	if len(parts) == 2 && parts[1] == "social-media" {
		switch r.Method {
		case http.MethodPost:
			h.addSocialMedia(w, r, id)
		case http.MethodGet:
			h.listSocialMedia(w, r, id)
		default:
			commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
		}
		return
	}

	commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPath, "invalid path", nil, "")
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req influencerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	inf, err := h.influencers.CreateInfluencer(r.Context(), service.CreateInfluencerInput{
		Name:     req.Name,
		ImageURL: req.ImageURL,
		Score:    req.Score,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toInfluencerResponse(inf))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	result, err := h.influencers.ListInfluencers(r.Context(), h.listLimit)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	out := make([]influencerResponse, 0, len(result))
	for _, inf := range result {
		out = append(out, toInfluencerResponse(inf))
	}
	commonhttp.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, id string) {
	inf, err := h.influencers.GetInfluencer(r.Context(), id)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toInfluencerResponse(inf))
}

func (h *Handler) addSocialMedia(w http.ResponseWriter, r *http.Request, id string) {
	var req socialMediaRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	sm, err := h.influencers.AddSocialMedia(r.Context(), service.AddSocialMediaInput{
		InfluencerID:   id,
		Platform:       req.Platform,
		URL:            req.URL,
		FollowersCount: req.FollowersCount,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toSocialMediaResponse(sm))
}

func (h *Handler) listSocialMedia(w http.ResponseWriter, r *http.Request, id string) {
	result, err := h.influencers.ListSocialMedia(r.Context(), id)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	out := make([]socialMediaResponse, 0, len(result))
	for _, sm := range result {
		out = append(out, toSocialMediaResponse(sm))
	}
	commonhttp.WriteJSON(w, http.StatusOK, out)
}

func toInfluencerResponse(inf domain.Influencer) influencerResponse {
	resp := influencerResponse{
		ID:       string(inf.ID),
		Name:     inf.Name,
		ImageURL: inf.ImageURL,
		Score:    inf.Score,
	}
	if !inf.CreatedAt.IsZero() {
		resp.CreatedAt = inf.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func toSocialMediaResponse(sm domain.SocialMedia) socialMediaResponse {
	resp := socialMediaResponse{
		ID:             string(sm.ID),
		InfluencerID:   string(sm.InfluencerID),
		Platform:       sm.Platform,
		URL:            sm.URL,
		FollowersCount: sm.FollowersCount,
	}
	if !sm.CreatedAt.IsZero() {
		resp.CreatedAt = sm.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
