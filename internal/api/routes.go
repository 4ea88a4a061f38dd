package api

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bravoaudit/engine/internal/audit"
	"github.com/bravoaudit/engine/internal/auditerr"
	"github.com/bravoaudit/engine/internal/auth"
	"github.com/bravoaudit/engine/internal/db"
	"github.com/bravoaudit/engine/internal/manifest"
	"github.com/bravoaudit/engine/internal/models"
)

// APIHandler holds the collaborators every handler needs: the
// persistence store and the websocket hub broadcasting round-lifecycle
// events to connected dashboards.
type APIHandler struct {
	store *db.PostgresStore
	wsHub *Hub
}

// SetupRouter wires the gin.Engine: CORS, the public health/stream
// routes, and the audit-admin / jurisdiction-admin protected groups
// implementing spec §6's external interface.
func SetupRouter(store *db.PostgresStore, wsHub *Hub) *gin.Engine {
	r := gin.Default()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	h := &APIHandler{store: store, wsHub: wsHub}

	pub := r.Group("/api/v1")
	{
		pub.GET("/health", h.handleHealth)
		pub.GET("/stream", wsHub.Subscribe)
	}

	// audit-admin: stands up the election, sets the round-1 sample
	// size, records audited results and closes rounds.
	admin := r.Group("/api/v1")
	admin.Use(RequireRole(RoleAuditAdmin))
	admin.Use(NewRateLimiter(30, 5).Middleware())
	{
		admin.POST("/election", h.handleStartAudit)
		admin.GET("/election/:electionId", h.handleGetElection)
		admin.POST("/election/:electionId/round/:roundNum/sample-size", h.handleChooseSampleSize)
		admin.POST("/election/:electionId/round/:roundNum/contest/:contestId/results", h.handleRecordResults)
		admin.GET("/election/:electionId/report", h.handleReport)
	}

	// jurisdiction-admin: uploads the manifest, stands up audit
	// boards, and pulls the retrieval list.
	juris := r.Group("/api/v1")
	juris.Use(RequireRole(RoleJurisdictionAdmin))
	juris.Use(NewRateLimiter(60, 10).Middleware())
	{
		juris.POST("/jurisdiction/:jurisdictionId/manifest", h.handleUploadManifest)
		juris.POST("/jurisdiction/:jurisdictionId/audit-board", h.handleCreateAuditBoard)
		juris.GET("/jurisdiction/:jurisdictionId/audit-board", h.handleListAuditBoards)
		juris.GET("/jurisdiction/:jurisdictionId/round/:roundNum/retrieval-list", h.handleRetrievalList)
		juris.POST("/jurisdiction/:jurisdictionId/ballot", h.handleRecordBallotVote)
	}

	return r
}

// jsonError translates an *auditerr.Error into the {"errors": [...]}
// shape the audit-admin console expects; any other error becomes a
// bare InternalError entry.
func jsonError(c *gin.Context, err error) {
	var ae *auditerr.Error
	status := http.StatusInternalServerError
	entry := gin.H{"message": err.Error(), "errorType": string(auditerr.TypeInternal)}

	if e, ok := err.(*auditerr.Error); ok {
		ae = e
		entry = gin.H{"message": ae.Message, "errorType": string(ae.Kind)}
		if ae.Field != "" {
			entry["field"] = ae.Field
		}
		switch ae.Kind {
		case auditerr.TypeInputValidation, auditerr.TypeUnauditable:
			status = http.StatusBadRequest
		case auditerr.TypeState:
			status = http.StatusConflict
		case auditerr.TypeNotFound:
			status = http.StatusNotFound
		}
	}
	c.JSON(status, gin.H{"errors": []gin.H{entry}})
}

func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "operational",
		"auditType":   "BRAVO",
		"dbConnected": h.store != nil,
	})
}

// ── start_audit ──────────────────────────────────────────────────

type startAuditRequest struct {
	Name          string                    `json:"name"`
	RiskLimit     int                       `json:"riskLimit"`
	RandomSeed    string                    `json:"randomSeed"`
	Contest       startAuditContest         `json:"contest"`
	Jurisdictions []startAuditJurisdiction  `json:"jurisdictions"`
}

type startAuditContest struct {
	Name             string                  `json:"name"`
	Choices          []models.ContestChoice  `json:"choices"`
	TotalBallotsCast int                     `json:"totalBallotsCast"`
	NumWinners       int                     `json:"numWinners"`
	VotesAllowed     int                     `json:"votesAllowed"`
}

type startAuditJurisdiction struct {
	Name string `json:"name"`
}

// handleStartAudit implements spec §6's start_audit: validates the
// single targeted contest, computes its margins/ASN, plans the round-1
// sample-size menu, and persists the election with its round 1 in
// PLANNED state.
func (h *APIHandler) handleStartAudit(c *gin.Context) {
	var req startAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, auditerr.InputValidation("body", "invalid request body: %v", err))
		return
	}
	if req.RiskLimit < 1 || req.RiskLimit > 20 {
		jsonError(c, auditerr.InputValidation("riskLimit", "risk limit must be between 1 and 20 percent"))
		return
	}
	if req.RandomSeed == "" {
		jsonError(c, auditerr.InputValidation("randomSeed", "random seed must be non-empty"))
		return
	}

	for i := range req.Contest.Choices {
		if req.Contest.Choices[i].ID == "" {
			req.Contest.Choices[i].ID = uuid.NewString()
		}
	}
	contest := models.Contest{
		ID:               uuid.NewString(),
		Name:             req.Contest.Name,
		Choices:          req.Contest.Choices,
		TotalBallotsCast: req.Contest.TotalBallotsCast,
		NumWinners:       req.Contest.NumWinners,
		VotesAllowed:     req.Contest.VotesAllowed,
	}
	if err := audit.AssertSingleContest([]models.Contest{contest}); err != nil {
		jsonError(c, err)
		return
	}

	alpha := float64(req.RiskLimit) / 100.0
	margins, err := audit.ComputeMargins(contest, alpha)
	if err != nil {
		jsonError(c, err)
		return
	}

	options := audit.PlanSampleSizes(margins, alpha, 0, 0,
		audit.DefaultMonteCarloTrials, audit.DefaultStoppingProbabilities, seedToUint64(req.RandomSeed))

	election := models.Election{
		ID:         uuid.NewString(),
		Name:       req.Name,
		RiskLimit:  req.RiskLimit,
		RandomSeed: req.RandomSeed,
		AuditType:  "BRAVO",
		Contests:   []models.Contest{contest},
	}
	ctx := c.Request.Context()
	if err := h.store.CreateElection(ctx, election); err != nil {
		jsonError(c, auditerr.Internal(err, "failed to create election"))
		return
	}

	jurisdictionIDs := make([]string, 0, len(req.Jurisdictions))
	for _, j := range req.Jurisdictions {
		jid := uuid.NewString()
		if err := h.store.CreateJurisdiction(ctx, models.Jurisdiction{ID: jid, ElectionID: election.ID, Name: j.Name}); err != nil {
			jsonError(c, auditerr.Internal(err, "failed to create jurisdiction %q", j.Name))
			return
		}
		jurisdictionIDs = append(jurisdictionIDs, jid)
	}

	round := models.Round{ID: uuid.NewString(), ElectionID: election.ID, RoundNum: 1, StartedAt: time.Now()}
	rc := models.RoundContest{ContestID: contest.ID}
	audit.PlanRound(&rc, options, 1)

	if err := h.store.RoundCreateAndPlan(ctx, election.ID, round, rc); err != nil {
		jsonError(c, auditerr.Internal(err, "failed to plan round 1"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"election":      election,
		"jurisdictions": jurisdictionIDs,
		"round1":        rc,
	})
}

func (h *APIHandler) handleGetElection(c *gin.Context) {
	electionID := c.Param("electionId")
	election, err := h.store.GetElection(c.Request.Context(), electionID)
	if err != nil {
		jsonError(c, auditerr.NotFound("election %s not found", electionID))
		return
	}
	c.JSON(http.StatusOK, gin.H{"election": election})
}

// ── choose_sample_size ───────────────────────────────────────────

func (h *APIHandler) handleChooseSampleSize(c *gin.Context) {
	electionID := c.Param("electionId")
	roundNum, err := strconv.Atoi(c.Param("roundNum"))
	if err != nil {
		jsonError(c, auditerr.InputValidation("roundNum", "round number must be an integer"))
		return
	}
	var req struct {
		Size int `json:"size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, auditerr.InputValidation("body", "invalid request body: %v", err))
		return
	}

	ctx := c.Request.Context()
	election, err := h.store.GetElection(ctx, electionID)
	if err != nil {
		jsonError(c, auditerr.NotFound("election %s not found", electionID))
		return
	}
	if err := audit.AssertSingleContest(election.Contests); err != nil {
		jsonError(c, err)
		return
	}
	contest := election.Contests[0]

	round, err := h.store.GetRoundByNum(ctx, electionID, roundNum)
	if err != nil {
		jsonError(c, auditerr.NotFound("round %d not found", roundNum))
		return
	}
	rc, err := h.store.GetRoundContest(ctx, round.ID, contest.ID)
	if err != nil {
		jsonError(c, auditerr.Internal(err, "failed to load round contest"))
		return
	}

	if err := audit.ChooseSampleSize(&rc, req.Size); err != nil {
		jsonError(c, err)
		return
	}
	if err := h.store.SetSampleSize(ctx, round.ID, contest.ID, rc.SampleSize); err != nil {
		jsonError(c, auditerr.Internal(err, "failed to persist chosen sample size"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"roundContest": rc})
}

// ── upload_manifest ──────────────────────────────────────────────

func (h *APIHandler) handleUploadManifest(c *gin.Context) {
	jurisdictionID := c.Param("jurisdictionId")
	ctx := c.Request.Context()

	parsed, err := manifest.Parse(c.Request.Body)
	if err != nil {
		jsonError(c, err)
		return
	}
	for i := range parsed.Batches {
		parsed.Batches[i].ID = uuid.NewString()
		parsed.Batches[i].JurisdictionID = jurisdictionID
	}

	if err := h.store.UploadManifest(ctx, jurisdictionID, parsed.Batches, parsed.NumBallots, parsed.NumBatches); err != nil {
		jsonError(c, auditerr.Internal(err, "failed to store manifest"))
		return
	}

	jurisdiction, err := h.store.GetJurisdiction(ctx, jurisdictionID)
	if err != nil {
		jsonError(c, auditerr.NotFound("jurisdiction %s not found", jurisdictionID))
		return
	}

	round, err := h.store.GetRoundByNum(ctx, jurisdiction.ElectionID, 1)
	if err != nil {
		// No round 1 stood up yet (manifest uploaded before start_audit's
		// round 1 exists) — the manifest is stored but no draw is
		// triggered. A re-upload once round 1 has left PLANNED is caught
		// by the state check below.
		c.JSON(http.StatusOK, gin.H{"manifest": parsed, "drawn": false})
		return
	}

	election, err := h.store.GetElection(ctx, jurisdiction.ElectionID)
	if err != nil {
		jsonError(c, auditerr.Internal(err, "failed to load election"))
		return
	}
	if err := audit.AssertSingleContest(election.Contests); err != nil {
		jsonError(c, err)
		return
	}
	contest := election.Contests[0]

	rc, err := h.store.GetRoundContest(ctx, round.ID, contest.ID)
	if err != nil {
		jsonError(c, auditerr.Internal(err, "failed to load round contest"))
		return
	}
	if rc.State != models.StatePlanned || rc.SampleSize <= 0 {
		c.JSON(http.StatusOK, gin.H{"manifest": parsed, "drawn": false})
		return
	}

	alreadyDrawn, err := h.store.CountAlreadyDrawn(ctx, jurisdictionID)
	if err != nil {
		jsonError(c, auditerr.Internal(err, "failed to count prior draws"))
		return
	}
	draws, err := audit.DrawSample(election.RandomSeed, parsed.Batches, rc.SampleSize, alreadyDrawn)
	if err != nil {
		jsonError(c, err)
		return
	}
	if err := audit.MarkDrawn(&rc); err != nil {
		jsonError(c, err)
		return
	}

	batchIDByName, err := h.store.BatchIDByName(ctx, jurisdictionID)
	if err != nil {
		jsonError(c, auditerr.Internal(err, "failed to load batch ids"))
		return
	}
	if err := h.store.DrawSample(ctx, round.ID, draws, batchIDByName, rc); err != nil {
		jsonError(c, auditerr.Internal(err, "failed to persist sample draw"))
		return
	}

	boards, err := h.store.ListAuditBoards(ctx, jurisdictionID)
	if err == nil && len(boards) > 0 {
		boardNames := make([]string, len(boards))
		for i, b := range boards {
			boardNames[i] = b.Name
		}
		boardByName := make(map[string]string, len(boards))
		for _, b := range boards {
			boardByName[b.Name] = b.ID
		}
		assignments := audit.Balance(draws, parsed.Batches, boardNames)
		for _, a := range assignments {
			if err := h.store.AssignBatchesToBoard(ctx, jurisdictionID, boardByName[a.BoardName], a.Batches); err != nil {
				jsonError(c, auditerr.Internal(err, "failed to assign batches to board %q", a.BoardName))
				return
			}
		}
	}

	h.wsHub.Broadcast([]byte(fmt.Sprintf(`{"type":"round_drawn","roundId":%q,"jurisdictionId":%q,"draws":%d}`,
		round.ID, jurisdictionID, len(draws))))

	c.JSON(http.StatusOK, gin.H{"manifest": parsed, "drawn": true, "sampleSize": rc.SampleSize})
}

// ── record_results ───────────────────────────────────────────────

func (h *APIHandler) handleRecordResults(c *gin.Context) {
	electionID := c.Param("electionId")
	contestID := c.Param("contestId")
	roundNum, err := strconv.Atoi(c.Param("roundNum"))
	if err != nil {
		jsonError(c, auditerr.InputValidation("roundNum", "round number must be an integer"))
		return
	}
	var req struct {
		Votes map[string]any `json:"votes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, auditerr.InputValidation("body", "invalid request body: %v", err))
		return
	}

	ctx := c.Request.Context()
	election, err := h.store.GetElection(ctx, electionID)
	if err != nil {
		jsonError(c, auditerr.NotFound("election %s not found", electionID))
		return
	}
	var contest models.Contest
	found := false
	for _, ct := range election.Contests {
		if ct.ID == contestID {
			contest = ct
			found = true
			break
		}
	}
	if !found {
		jsonError(c, auditerr.NotFound("contest %s not found", contestID))
		return
	}

	round, err := h.store.GetRoundByNum(ctx, electionID, roundNum)
	if err != nil {
		jsonError(c, auditerr.NotFound("round %d not found", roundNum))
		return
	}
	rc, err := h.store.GetRoundContest(ctx, round.ID, contestID)
	if err != nil {
		jsonError(c, auditerr.Internal(err, "failed to load round contest"))
		return
	}

	votes, err := audit.CoerceVoteCounts(req.Votes)
	if err != nil {
		jsonError(c, err)
		return
	}
	if err := audit.ValidateAuditedTotals(votes, rc.SampleSize, contest.VotesAllowed); err != nil {
		jsonError(c, err)
		return
	}
	if err := audit.MarkAudited(&rc); err != nil {
		jsonError(c, err)
		return
	}
	rc.Results = votes
	if err := h.store.RecordResults(ctx, round.ID, rc); err != nil {
		jsonError(c, auditerr.Internal(err, "failed to persist audited results"))
		return
	}

	alpha := float64(election.RiskLimit) / 100.0
	margins, err := audit.ComputeMargins(contest, alpha)
	if err != nil {
		jsonError(c, err)
		return
	}
	risk := audit.ComputeRisk(margins, votes, alpha)
	if err := audit.CloseRoundContest(&rc, risk); err != nil {
		jsonError(c, err)
		return
	}
	if err := h.store.CloseRound(ctx, round.ID, rc, true); err != nil {
		jsonError(c, auditerr.Internal(err, "failed to close round"))
		return
	}

	sampleW, sampleR := 0, 0
	if len(margins.Pairs) > 0 {
		governing := margins.Pairs[bestPairIndex(margins)]
		sampleW = votes[governing.WinnerID]
		sampleR = votes[governing.LoserID]
	}
	nextOptions := audit.PlanSampleSizes(margins, alpha, sampleW, sampleR,
		audit.DefaultMonteCarloTrials, audit.DefaultStoppingProbabilities, seedToUint64(election.RandomSeed))
	evaluation := audit.EvaluateRound(risk, nextOptions)

	resp := gin.H{"risk": risk, "roundContest": rc}
	if evaluation.Kind == audit.EvalNeedsNextRound {
		nextRound := models.Round{ID: uuid.NewString(), ElectionID: electionID, RoundNum: roundNum + 1, StartedAt: time.Now()}
		nextRC := models.RoundContest{ContestID: contestID}
		audit.PlanRound(&nextRC, nextOptions, roundNum+1)
		nextRC.SampleSize = evaluation.NextSize
		if err := h.store.RoundCreateAndPlan(ctx, electionID, nextRound, nextRC); err != nil {
			jsonError(c, auditerr.Internal(err, "failed to plan next round"))
			return
		}
		resp["nextRound"] = nextRC
	}

	h.wsHub.Broadcast([]byte(fmt.Sprintf(`{"type":"round_closed","electionId":%q,"roundNum":%d,"pValue":%.6f,"complete":%t}`,
		electionID, roundNum, risk.PValue, risk.IsComplete)))

	c.JSON(http.StatusOK, resp)
}

// bestPairIndex finds the ASN-governing pair within an already-computed
// Margins value, mirroring ComputeMargins' own selection (the pair with
// the largest ASN).
func bestPairIndex(m audit.Margins) int {
	best := 0
	for i, p := range m.Pairs {
		if p.ASN > m.Pairs[best].ASN {
			best = i
		}
	}
	return best
}

// ── retrieval_list ───────────────────────────────────────────────

func (h *APIHandler) handleRetrievalList(c *gin.Context) {
	jurisdictionID := c.Param("jurisdictionId")
	roundNum, err := strconv.Atoi(c.Param("roundNum"))
	if err != nil {
		jsonError(c, auditerr.InputValidation("roundNum", "round number must be an integer"))
		return
	}
	ctx := c.Request.Context()

	jurisdiction, err := h.store.GetJurisdiction(ctx, jurisdictionID)
	if err != nil {
		jsonError(c, auditerr.NotFound("jurisdiction %s not found", jurisdictionID))
		return
	}
	round, err := h.store.GetRoundByNum(ctx, jurisdiction.ElectionID, roundNum)
	if err != nil {
		jsonError(c, auditerr.NotFound("round %d not found", roundNum))
		return
	}

	draws, err := h.store.ListDraws(ctx, round.ID, jurisdictionID)
	if err != nil {
		jsonError(c, auditerr.Internal(err, "failed to load draws"))
		return
	}
	alreadyAudited, err := h.store.AlreadyAuditedSet(ctx, jurisdictionID, roundNum)
	if err != nil {
		jsonError(c, auditerr.Internal(err, "failed to load prior-round draws"))
		return
	}

	byBallot := make(map[string]*manifest.RetrievalRow)
	var order []string
	for _, d := range draws {
		key := fmt.Sprintf("%s|%d", d.BatchName, d.BallotPosition)
		row, ok := byBallot[key]
		if !ok {
			row = &manifest.RetrievalRow{
				BatchName:       d.BatchName,
				BallotNumber:    d.BallotPosition,
				StorageLocation: d.StorageLocation,
				Tabulator:       d.Tabulator,
				AlreadyAudited:  alreadyAudited[key],
				AuditBoard:      d.AuditBoardName,
			}
			byBallot[key] = row
			order = append(order, key)
		}
		row.TicketNumbers = append(row.TicketNumbers, d.TicketNumber)
	}
	rows := make([]manifest.RetrievalRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, *byBallot[key])
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="retrieval-list-round-%d.csv"`, roundNum))
	if err := manifest.WriteRetrievalList(c.Writer, rows); err != nil {
		jsonError(c, auditerr.Internal(err, "failed to write retrieval list"))
	}
}

// ── report ───────────────────────────────────────────────────────

func (h *APIHandler) handleReport(c *gin.Context) {
	electionID := c.Param("electionId")
	ctx := c.Request.Context()

	election, err := h.store.GetElection(ctx, electionID)
	if err != nil {
		jsonError(c, auditerr.NotFound("election %s not found", electionID))
		return
	}
	rounds, err := h.store.ListRounds(ctx, electionID)
	if err != nil {
		jsonError(c, auditerr.Internal(err, "failed to load rounds"))
		return
	}

	var reportContests []manifest.ReportContest
	for _, contest := range election.Contests {
		reported := make(map[string]int, len(contest.Choices))
		nameByID := make(map[string]string, len(contest.Choices))
		for _, ch := range contest.Choices {
			reported[ch.Name] = ch.NumVotes
			nameByID[ch.ID] = ch.Name
		}
		rc := manifest.ReportContest{
			Name:             contest.Name,
			NumWinners:       contest.NumWinners,
			VotesAllowed:     contest.VotesAllowed,
			TotalBallotsCast: contest.TotalBallotsCast,
			ReportedVotes:    reported,
			RiskLimit:        election.RiskLimit,
			Seed:             election.RandomSeed,
		}
		for _, round := range rounds {
			roundContest, err := h.store.GetRoundContest(ctx, round.ID, contest.ID)
			if err != nil {
				continue
			}
			pValue := 0.0
			if roundContest.EndPValue != nil {
				pValue = *roundContest.EndPValue
			}
			audited := make(map[string]int, len(roundContest.Results))
			for id, n := range roundContest.Results {
				audited[nameByID[id]] = n
			}
			rc.Rounds = append(rc.Rounds, manifest.ReportRoundContest{
				RoundNum:     round.RoundNum,
				SampleSize:   roundContest.SampleSize,
				AuditedVotes: audited,
				PValue:       pValue,
				RiskLimitMet: roundContest.IsComplete,
				StartedAt:    round.StartedAt,
				EndedAt:      round.EndedAt,
			})
		}
		reportContests = append(reportContests, rc)
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="audit-report-%s.csv"`, electionID))
	if err := manifest.WriteReport(c.Writer, reportContests); err != nil {
		jsonError(c, auditerr.Internal(err, "failed to write report"))
	}
}

// ── audit boards & ballot votes ──────────────────────────────────

func (h *APIHandler) handleCreateAuditBoard(c *gin.Context) {
	jurisdictionID := c.Param("jurisdictionId")
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, auditerr.InputValidation("body", "invalid request body: %v", err))
		return
	}
	passphrase, err := auth.GeneratePassphrase()
	if err != nil {
		jsonError(c, auditerr.Internal(err, "failed to generate audit board passphrase"))
		return
	}
	board := models.AuditBoard{ID: uuid.NewString(), JurisdictionID: jurisdictionID, Name: req.Name, Passphrase: passphrase}
	if err := h.store.CreateAuditBoard(c.Request.Context(), board); err != nil {
		jsonError(c, auditerr.Internal(err, "failed to create audit board"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"auditBoard": board})
}

func (h *APIHandler) handleListAuditBoards(c *gin.Context) {
	jurisdictionID := c.Param("jurisdictionId")
	boards, err := h.store.ListAuditBoards(c.Request.Context(), jurisdictionID)
	if err != nil {
		jsonError(c, auditerr.Internal(err, "failed to load audit boards"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"auditBoards": boards})
}

func (h *APIHandler) handleRecordBallotVote(c *gin.Context) {
	var req struct {
		BatchID  string `json:"batchId"`
		Position int    `json:"position"`
		Vote     string `json:"vote"`
		Comment  string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, auditerr.InputValidation("body", "invalid request body: %v", err))
		return
	}
	if err := h.store.RecordBallotVote(c.Request.Context(), req.BatchID, req.Position, req.Vote, req.Comment); err != nil {
		jsonError(c, auditerr.Internal(err, "failed to record ballot vote"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"recorded": true})
}

// seedToUint64 derives a deterministic uint64 simulation seed from the
// election's printable random seed string, so PlanSampleSizes' Monte
// Carlo run is itself reproducible given the same audit seed.
func seedToUint64(seed string) uint64 {
	var h uint64 = 14695981039346656037 // FNV-1a offset basis
	for i := 0; i < len(seed); i++ {
		h ^= uint64(seed[i])
		h *= 1099511628211 // FNV-1a prime
	}
	return h
}
