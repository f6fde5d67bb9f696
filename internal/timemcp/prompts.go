package timemcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/localtools/localmcp/pkg/types"
)

// registerPrompts wires the scheduling prompt templates. Each prompt
// resolves the named zones up front so the model works from real
// offsets instead of guessing.
func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("time.meeting_scheduler",
		mcp.WithPromptDescription("Suggest meeting times that work across several timezones"),
		mcp.WithArgument("timezones",
			mcp.ArgumentDescription("Comma-separated IANA timezone names of the participants"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("duration_minutes",
			mcp.ArgumentDescription("Meeting length in minutes; defaults to 60"),
		),
	), s.handleMeetingSchedulerPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("time.travel_planner",
		mcp.WithPromptDescription("Plan around the time change of a trip between two timezones"),
		mcp.WithArgument("from_timezone",
			mcp.ArgumentDescription("Departure IANA timezone"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("to_timezone",
			mcp.ArgumentDescription("Arrival IANA timezone"),
			mcp.RequiredArgument(),
		),
	), s.handleTravelPlannerPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("time.team_coordination",
		mcp.WithPromptDescription("Summarize working-hour overlap for a distributed team"),
		mcp.WithArgument("timezones",
			mcp.ArgumentDescription("Comma-separated IANA timezone names of team members"),
			mcp.RequiredArgument(),
		),
	), s.handleTeamCoordinationPrompt)
}

func (s *Server) handleMeetingSchedulerPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	zones, err := s.resolveZones(request.Params.Arguments["timezones"])
	if err != nil {
		return nil, err
	}

	duration := request.Params.Arguments["duration_minutes"]
	if duration == "" {
		duration = "60"
	}

	text := fmt.Sprintf(
		"Suggest three candidate meeting slots of %s minutes that fall inside normal "+
			"business hours (09:00-17:00) for as many participants as possible.\n"+
			"Flag any participant for whom a slot falls outside 08:00-20:00.\n\n"+
			"Current time per participant:\n%s",
		duration, zoneTable(zones))

	return mcp.NewGetPromptResult(
		"Meeting scheduling across timezones",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func (s *Server) handleTravelPlannerPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	from := request.Params.Arguments["from_timezone"]
	to := request.Params.Arguments["to_timezone"]
	if from == "" || to == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "from_timezone and to_timezone arguments are required", nil)
	}

	fromInfo, err := s.tz.Current(from)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, err.Error(), nil)
	}
	toInfo, err := s.tz.Current(to)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, err.Error(), nil)
	}

	text := fmt.Sprintf(
		"Help plan a trip from %s to %s.\n"+
			"Explain the time change, how to adjust sleep before departure, and good times "+
			"to call home after arrival.\n\n"+
			"Origin now: %s (%s, UTC%s)\n"+
			"Destination now: %s (%s, UTC%s)",
		from, to,
		fromInfo.DateTime, fromInfo.ZoneAbbreviation, fromInfo.UTCOffset,
		toInfo.DateTime, toInfo.ZoneAbbreviation, toInfo.UTCOffset)

	return mcp.NewGetPromptResult(
		fmt.Sprintf("Travel planning %s to %s", from, to),
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func (s *Server) handleTeamCoordinationPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	zones, err := s.resolveZones(request.Params.Arguments["timezones"])
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf(
		"Describe the working-hour overlap for a team spread across these timezones.\n"+
			"Identify the daily window where everyone is inside 09:00-17:00, or the closest "+
			"compromise if no such window exists, and note who carries the inconvenient hours.\n\n"+
			"Current time per location:\n%s",
		zoneTable(zones))

	return mcp.NewGetPromptResult(
		"Team coordination across timezones",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

// resolveZones parses a comma-separated zone list and resolves the
// current time in each. Unknown zones fail the whole prompt.
func (s *Server) resolveZones(list string) ([]*types.TimeInfo, error) {
	var zones []*types.TimeInfo
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		info, err := s.tz.Current(name)
		if err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, err.Error(), map[string]interface{}{
				"param": "timezones",
				"zone":  name,
			})
		}
		zones = append(zones, info)
	}
	if len(zones) == 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "timezones argument is required", nil)
	}
	return zones, nil
}

func zoneTable(zones []*types.TimeInfo) string {
	var b strings.Builder
	for _, z := range zones {
		fmt.Fprintf(&b, "- %s: %s (%s, UTC%s, DST %v)\n",
			z.Timezone, z.DateTime, z.ZoneAbbreviation, z.UTCOffset, z.IsDST)
	}
	return b.String()
}
