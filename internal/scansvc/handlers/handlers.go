package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aurapass/kiosk-services/internal/comm"
	"github.com/aurapass/kiosk-services/internal/scansvc/engine"
	"github.com/aurapass/kiosk-services/internal/scansvc/service"
)

type Handler struct {
	tokenAuth           *jwtauth.JWTAuth
	publish             func(topic string, payload []byte) error
	memberService       *service.MemberService
	notificationService *service.NotificationService
}

type ScanRequest struct {
	Code string `json:"code"`
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func NewHandler(publish func(topic string, payload []byte) error, memberService *service.MemberService, notificationService *service.NotificationService) *Handler {
	return &Handler{
		publish:             publish,
		memberService:       memberService,
		notificationService: notificationService,
	}
}

func (rs *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

// ScanHandler accepts a kiosk scan, enqueues it and acknowledges right
// away. The real decision arrives on the monitor channel; the kiosk never
// waits for it.
func (h *Handler) ScanHandler(w http.ResponseWriter, r *http.Request) {
	h.acceptScan(w, r, false)
}

// ForceScanHandler is the admin variant: the job carries force=true, which
// bypasses the debounce window and always closes an open session.
func (h *Handler) ForceScanHandler(w http.ResponseWriter, r *http.Request) {
	h.acceptScan(w, r, true)
}

func (h *Handler) acceptScan(w http.ResponseWriter, r *http.Request, force bool) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	// Malformed input stops here; the engine never sees an empty code.
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		h.CreateResponse(w, Response{Code: http.StatusUnprocessableEntity, Error: "code is required"})
		return
	}

	job := comm.ScanJob{
		Code:      req.Code,
		Force:     force,
		RequestId: uuid.New().String(),
		ScannedAt: time.Now().UTC(),
	}

	bytes, err := json.Marshal(job)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to encode scan job"})
		return
	}

	if err := h.publish(comm.TopicScanQueue, bytes); err != nil {
		log.Errorf("Failed to publish scan job to %s: %v", comm.TopicScanQueue, err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to enqueue scan"})
		return
	}

	h.CreateResponse(w, Response{
		Message: "processing",
		Code:    http.StatusOK,
		Data:    map[string]string{"request_id": job.RequestId},
	})
}

// ValidateHandler is a synchronous, read-only membership check for
// front-desk clients that want an answer in the response body. It never
// touches the session ledger; the kiosk toggle flow goes through the
// queue.
func (h *Handler) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		h.CreateResponse(w, Response{Code: http.StatusUnprocessableEntity, Error: "code is required"})
		return
	}

	member, err := h.memberService.Resolve(r.Context(), req.Code)
	if err != nil {
		log.Errorf("Failed to resolve member %s: %v", req.Code, err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to look up member"})
		return
	}

	if member == nil {
		h.CreateResponse(w, Response{Code: http.StatusNotFound, Data: map[string]string{"status": "not_found"}})
		return
	}

	status := "active"
	if engine.Expired(member, time.Now().UTC()) {
		status = "expired"
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: map[string]string{
		"status": status,
		"name":   member.Name,
		"expiry": member.MembershipExpiryDate.Format("2006-01-02"),
	}})
}

// NotificationsHandler returns an admin's persisted notification feed.
func (h *Handler) NotificationsHandler(w http.ResponseWriter, r *http.Request) {
	adminID, err := strconv.ParseInt(r.URL.Query().Get("admin_id"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnprocessableEntity, Error: "admin_id is required"})
		return
	}

	notifications, err := h.notificationService.ListForAdmin(r.Context(), adminID, 50)
	if err != nil {
		log.Errorf("Failed to list notifications for admin %d: %v", adminID, err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to load notifications"})
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: notifications})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "scan service is running at port " + os.Getenv("SCAN_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}
