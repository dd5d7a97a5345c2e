package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"petverse/internal/app/care"
	"petverse/internal/app/matchmaking"
	"petverse/internal/app/ports"
	"petverse/internal/app/raid"
	"petverse/internal/app/scoring"
	"petverse/internal/app/staking"
	"petverse/internal/app/status"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const userIDHeader = "X-User-ID"

type Handler struct {
	AdoptUC   care.AdoptUseCase
	CareUC    care.UseCase
	StatusUC  status.UseCase
	StakingUC staking.UseCase
	RaidUC    raid.UseCase
	MatchUC   matchmaking.UseCase
	ScoringUC *scoring.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	petGroup := s.Group("/api/pet")
	petGroup.POST("/adopt", h.adopt)
	petGroup.GET("/status", h.status)
	petGroup.POST("/action", h.action)
	petGroup.GET("/history", h.history)

	stakeGroup := s.Group("/api/stake")
	stakeGroup.POST("", h.stake)
	stakeGroup.POST("/unstake", h.unstake)
	stakeGroup.POST("/claim", h.claim)

	raidGroup := s.Group("/api/raid")
	raidGroup.GET("/current", h.raidCurrent)
	raidGroup.POST("/join", h.raidJoin)
	raidGroup.POST("/attack", h.raidAttack)

	s.GET("/api/matchmaking/opponents", h.opponents)

	tribeGroup := s.Group("/api/tribes")
	tribeGroup.GET("/standings", h.standings)
	tribeGroup.GET("/scores", h.scores)
	tribeGroup.POST("/contribute", h.contribute)

	s.POST("/api/weeks/close", h.closeWeek)
	s.GET("/api/season", h.season)
	s.GET("/ops/kpi", h.kpi)
}

type adoptRequest struct {
	Tribe string `json:"tribe"`
}

type actionRequest struct {
	PetID  string `json:"pet_id"`
	Action string `json:"action"`
}

type stakeRequest struct {
	PetID  string `json:"pet_id"`
	Amount int64  `json:"amount"`
	TxRef  string `json:"tx_ref,omitempty"`
}

type claimRequest struct {
	PetID          string `json:"pet_id"`
	IsWinningTribe bool   `json:"is_winning_tribe,omitempty"`
	TxRef          string `json:"tx_ref,omitempty"`
}

type joinRequest struct {
	PetID string `json:"pet_id"`
}

type contributeRequest struct {
	Tribe  string `json:"tribe"`
	Amount int64  `json:"amount"`
	TxRef  string `json:"tx_ref,omitempty"`
}

func (h Handler) adopt(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body adoptRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.AdoptUC.Execute(c, care.AdoptRequest{UserID: userID, Tribe: body.Tribe})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.StatusUC.Execute(c, status.Request{UserID: userID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CareUC.Execute(c, care.Request{
		UserID: userID,
		PetID:  body.PetID,
		Action: body.Action,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.StatusUC.History(c, status.HistoryRequest{UserID: userID, Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) stake(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body stakeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.StakingUC.Stake(c, staking.StakeRequest{
		UserID: userID,
		PetID:  body.PetID,
		Amount: body.Amount,
		TxRef:  body.TxRef,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) unstake(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body stakeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.StakingUC.Unstake(c, staking.UnstakeRequest{
		UserID: userID,
		PetID:  body.PetID,
		Amount: body.Amount,
		TxRef:  body.TxRef,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) claim(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body claimRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.StakingUC.Claim(c, staking.ClaimRequest{
		UserID:         userID,
		PetID:          body.PetID,
		IsWinningTribe: body.IsWinningTribe,
		TxRef:          body.TxRef,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) raidCurrent(c context.Context, ctx *app.RequestContext) {
	resp, err := h.RaidUC.Current(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) raidJoin(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body joinRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.RaidUC.Join(c, raid.JoinRequest{UserID: userID, PetID: body.PetID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) raidAttack(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.RaidUC.Attack(c, raid.AttackRequest{UserID: userID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) opponents(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.MatchUC.Execute(c, matchmaking.Request{
		UserID: userID,
		PetID:  string(ctx.Query("pet_id")),
		Limit:  limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) standings(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ScoringUC.Standings(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) scores(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ScoringUC.Scores(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) contribute(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body contributeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ScoringUC.Contribute(c, scoring.ContributeRequest{
		UserID: userID,
		Tribe:  body.Tribe,
		Amount: body.Amount,
		TxRef:  body.TxRef,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) closeWeek(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ScoringUC.CloseWeek(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) season(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ScoringUC.Season(c, string(ctx.Query("season_id")))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingUserIDHeader = errors.New("missing x-user-id header")

func requireUser(ctx *app.RequestContext) (string, error) {
	userID := strings.TrimSpace(string(ctx.GetHeader(userIDHeader)))
	if userID == "" {
		return "", ErrMissingUserIDHeader
	}
	return userID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingUserIDHeader):
		writeErrorBody(ctx, consts.StatusUnauthorized, "missing_user_id", err.Error())
	case errors.Is(err, care.ErrAlreadyAdopted):
		writeErrorBody(ctx, consts.StatusConflict, "already_adopted", err.Error())
	case errors.Is(err, care.ErrUnknownTribe),
		errors.Is(err, care.ErrUnknownAction),
		errors.Is(err, scoring.ErrUnknownTribe),
		errors.Is(err, care.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, staking.ErrInvalidRequest),
		errors.Is(err, raid.ErrInvalidRequest),
		errors.Is(err, matchmaking.ErrInvalidRequest),
		errors.Is(err, scoring.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
