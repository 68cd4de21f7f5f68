// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools, prompts and resources. No business logic
// lives here, only wiring.
package server

import (
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/introflow/internal/config"
	"github.com/HendryAvila/introflow/internal/prompts"
	"github.com/HendryAvila/introflow/internal/research"
	"github.com/HendryAvila/introflow/internal/resources"
	"github.com/HendryAvila/introflow/internal/store"
	"github.com/HendryAvila/introflow/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts and
// resources registered.
//
// The returned cleanup function closes the store's database connection and
// must be called on shutdown (typically via defer). It is always non-nil.
func New(cfg config.Config) (*server.MCPServer, func(), error) {
	st, err := store.New(store.Config{DataDir: cfg.DataDir})
	if err != nil {
		return nil, noop, fmt.Errorf("opening store: %w", err)
	}
	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Printf("WARNING: store close: %v", err)
		}
	}

	runner := research.NewRunner(st, research.GapResearcher{}, cfg.ResearchBatch)

	s := server.NewMCPServer(
		"introflow",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	registerTools(s, st, runner, cfg)

	// --- Register prompts ---

	dailyDigest := prompts.NewDailyDigestPrompt()
	s.AddPrompt(dailyDigest.Definition(), dailyDigest.Handle)

	founderBriefing := prompts.NewFounderBriefingPrompt()
	s.AddPrompt(founderBriefing.Definition(), founderBriefing.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(st)
	s.AddResource(resourceHandler.ReportResource(), resourceHandler.HandleReport)

	return s, cleanup, nil
}

// noop is the cleanup returned when the store never opened.
func noop() {}

// registerTools registers every introflow MCP tool with the server.
func registerTools(s *server.MCPServer, st *store.Store, runner *research.Runner, cfg config.Config) {
	// --- Tasks & digests (read-only) ---

	founderTasks := tools.NewFounderTasksTool(st)
	s.AddTool(founderTasks.Definition(), founderTasks.Handle)

	connectorTasks := tools.NewConnectorTasksTool(st, cfg.ConnectorCutoff)
	s.AddTool(connectorTasks.Definition(), connectorTasks.Handle)

	founderDigest := tools.NewFounderDigestTool(st)
	s.AddTool(founderDigest.Definition(), founderDigest.Handle)

	pendingFounders := tools.NewPendingFoundersTool(st)
	s.AddTool(pendingFounders.Definition(), pendingFounders.Handle)

	adminDigest := tools.NewAdminDigestTool(st)
	s.AddTool(adminDigest.Definition(), adminDigest.Handle)

	// --- Statistics ---

	stats := tools.NewPipelineStatsTool(st)
	s.AddTool(stats.Definition(), stats.Handle)

	trendsTool := tools.NewPipelineTrendsTool(st)
	s.AddTool(trendsTool.Definition(), trendsTool.Handle)

	// --- Mutations ---

	requestIntro := tools.NewRequestIntroTool(st)
	s.AddTool(requestIntro.Definition(), requestIntro.Handle)

	updateStatus := tools.NewUpdateStatusTool(st)
	s.AddTool(updateStatus.Definition(), updateStatus.Handle)

	logFollowup := tools.NewLogFollowupTool(st)
	s.AddTool(logFollowup.Definition(), logFollowup.Handle)

	deleteIntro := tools.NewDeleteIntroTool(st)
	s.AddTool(deleteIntro.Definition(), deleteIntro.Handle)

	// --- People ---

	addPerson := tools.NewAddPersonTool(st)
	s.AddTool(addPerson.Definition(), addPerson.Handle)

	listPeople := tools.NewListPeopleTool(st)
	s.AddTool(listPeople.Definition(), listPeople.Handle)

	setRound := tools.NewSetRoundStatusTool(st)
	s.AddTool(setRound.Definition(), setRound.Handle)

	// --- Investor research ---

	researchStart := tools.NewResearchStartTool(runner)
	s.AddTool(researchStart.Definition(), researchStart.Handle)

	researchStatus := tools.NewResearchStatusTool(runner)
	s.AddTool(researchStatus.Definition(), researchStatus.Handle)
}

// serverInstructions returns the system instructions that tell the AI
// how to use introflow.
func serverInstructions() string {
	return `You have access to introflow, which tracks warm introductions between
founders and investors made through connectors.

## ROLES

- Founder: asks for introductions and owns follow-ups after an introduction happens.
- Connector: the person who asks the investor and makes the introduction.
- Admin: watches the whole pipeline and chases stalled requests.

## DAILY WORK

- intro_founder_tasks / intro_founder_digest: what one founder should do today.
- intro_connector_tasks: what one connector should do, grouped by founder.
- intro_admin_digest: escalated requests, admin-owned overdue follow-ups, circle-back opportunities.
- intro_pending_founders: which founders have open actions.

## RECORDING PROGRESS

- intro_request records a new request. A founder can have only one open request per investor.
- intro_update_status moves an introduction to a new status or corrects its dates.
- intro_log_followup records a follow-up. Log a connector-update once the connector has been
  told about a meeting, otherwise the founder digest keeps asking.
- intro_delete removes an introduction recorded by mistake, with its follow-up logs.

## PEOPLE

- intro_add_person and intro_list_people manage founders, connectors and investors.
- intro_set_round_status opens or closes a founder's round; circle-back opportunities
  only appear while the round is open.

## REPORTING

- intro_pipeline_stats and intro_pipeline_trends summarize the pipeline.
- The introflow://pipeline/report resource holds the full report as JSON.

Never invent statuses or dates: every date is YYYY-MM-DD.`
}
