// Package timemcp implements the time MCP server: timezone-aware clock
// queries over stdio.
//
// # Surface
//
// Tools: time.current, time.convert, time.timezone_info,
// time.list_timezones and time.melbourne. Resources: time://current,
// time://melbourne and a time://zone/{name} template. Prompts:
// time.meeting_scheduler, time.travel_planner and
// time.team_coordination.
//
// Conversions can carry DST warnings when either zone changes offset
// within the next week; set enable_dst_warnings to false to turn them
// off.
package timemcp
