package simulation

import (
	"fmt"
	"strings"

	"anti-portfolio/internal/profile"
)

// scenarioSystemPrompt drives initial scenario authoring. The reply
// must come back as ---separated sections with [BRIEF]/[TEAM]/
// [TIMELINE]/[TASK] markers so parseScenarioSections can split it.
const scenarioSystemPrompt = `You are a professional-scenario simulator. Given a candidate profile, author the opening of an interactive career simulation in which the candidate has just started a new role and must make a sequence of decisions.

Produce EXACTLY four sections, in this order, separated by a line containing only "---":

[BRIEF]
# <a short scenario title>
The company, the situation the candidate walks into, and what is at stake. 4-6 sentences, concrete numbers and names.

---

[TEAM]
The people the candidate works with: 3-5 team members with names, roles and one defining trait each.

---

[TIMELINE]
The time frame of the simulation and the key upcoming milestones or deadlines.

---

[TASK]
The first decision the candidate must make: 2-3 sentences of immediate context followed by one direct question.

Rules:
- Keep every section tight; no filler.
- The scenario must match the candidate's role, seniority and sector.
- Stakes should be realistic for the stated context type.
- Address the candidate directly as "you".`

const seniorityDefault = "Mid (2-5 years)"

var seniorityBuckets = map[string]string{
	"Junior":    "Junior (0-2 years)",
	"Mid-level": seniorityDefault,
	"Mid":       seniorityDefault,
	"Senior":    "Senior (5-10 years)",
	"Lead":      "Lead/Principal (10+ years)",
	"Principal": "Lead/Principal (10+ years)",
}

// formatProfileFragment renders the fixed-shape profile block appended
// to the scenario-authoring prompt.
func formatProfileFragment(a *profile.Analysis, cfg *Config) string {
	seniority, ok := seniorityBuckets[a.Seniority]
	if !ok {
		seniority = a.Seniority
		if seniority == "" {
			seniority = seniorityDefault
		}
	}
	role := a.Role
	if role == "" {
		role = a.DesiredRole
	}
	contextType := cfg.ContextType
	if contextType == "" {
		contextType = "startup"
	}
	return fmt.Sprintf(`CANDIDATE PROFILE:
- Role: %s
- Seniority: %s
- Preferred context: %s
- Challenge type: Crisis Management
- Duration: %d decisions
- Tone: Professional`, role, seniority, contextType, cfg.TasksCount)
}

// buildContinuationPrompt is the system instruction for one Advance
// turn. The model is told to open with an explicit type marker; the
// engine's challenge decision remains authoritative regardless.
func buildContinuationPrompt(completedTasks, totalTasks int, challenge bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a professional-scenario simulator continuing an interactive simulation.

CONTEXT:
- The user has just answered a task/decision
- Tasks completed: %d/%d
- Stay consistent with the scenario and the previous decisions

`, completedTasks, totalTasks)
	if challenge {
		b.WriteString(`GENERATE A CHALLENGE / CRITICAL EVENT:
- A sudden event that complicates the situation
- It must be a credible consequence of the context
- It demands a fast decision
- Max 3-4 sentences of context plus a direct question

Start your reply with the literal marker [CHALLENGE].`)
	} else {
		b.WriteString(`GENERATE THE NEXT TASK:
- A natural consequence of the previous decision
- Max 3-4 sentences of context plus a direct question

Start your reply with the literal marker [TASK].`)
	}
	b.WriteString(`

REPLY FORMAT (after the marker):
1. Brief feedback on the user's answer (1-2 sentences)
2. Immediate consequences
3. The next prompt

MAXIMUM CONCISENESS: only necessary information plus minimal context. Professional, direct tone.`)
	return b.String()
}

// buildEvaluationPrompt embeds the full ordered transcript and a strict
// output-shape instruction for the final assessment.
func buildEvaluationPrompt(sim *Simulation, messages []Message) string {
	var transcript strings.Builder
	for _, m := range messages {
		tag := m.Type
		if tag == "" {
			tag = "MESSAGE"
		}
		fmt.Fprintf(&transcript, "%s [%s]: %s\n\n", strings.ToUpper(m.Role), tag, m.Content)
	}

	title := sim.ScenarioTitle
	if title == "" {
		title = "Professional scenario"
	}

	return fmt.Sprintf(`You are an expert assessor of professional competencies. You have just observed a complete simulation in which a candidate faced %d decisions/tasks in a realistic work scenario.

SIMULATION CONTEXT:
Title: %s
Tasks completed: %d/%d

FULL CONVERSATION:
%s
Your mission is to provide a DEEP and DETAILED qualitative evaluation of the candidate's performance.

IMPORTANT:
- Analyze ALL of the user's messages, not just the last ones
- Identify recurring patterns in the answers
- Judge the quality of the decisions, not just the quantity
- Give specific examples taken from the candidate's actual answers
- Be constructive but honest

Respond EXCLUSIVELY as JSON with this structure:

{
  "strengths": [
    {"title": "Name of the strength", "description": "What this strength demonstrates", "examples": ["Specific example 1 from the simulation", "Specific example 2"]}
  ],
  "weaknesses": [
    {"title": "Name of the improvement area", "description": "What could improve", "suggestions": ["Practical suggestion 1", "Practical suggestion 2"]}
  ],
  "qualities": [
    {"name": "Leadership", "score": 85, "description": "Assessment of the leadership shown"},
    {"name": "Communication", "score": 75, "description": "Assessment of communication skills"},
    {"name": "Problem Solving", "score": 90, "description": "Assessment of problem solving"},
    {"name": "Adaptability", "score": 70, "description": "Assessment of adaptability to new situations"},
    {"name": "Strategic Vision", "score": 80, "description": "Assessment of strategic thinking"}
  ],
  "overallAssessment": "A narrative overall evaluation of 3-4 paragraphs synthesizing the profile that emerged from the simulation, highlighting potential and growth areas.",
  "leadershipStyle": "The leadership style that emerged (collaborative, directive, coaching, visionary, ...)",
  "decisionMaking": "The decision-making approach (data-driven, intuitive, collaborative, deliberate, ...)",
  "communicationStyle": "The communication style (direct, empathetic, analytical, concise, ...)",
  "problemSolving": "The problem-solving approach (methodical, creative, pragmatic, analytical, ...)",
  "scores": {"overall": 78, "leadership": 85, "technical": 75, "communication": 80, "adaptability": 70}
}

REQUIREMENTS:
- Identify at least 3-5 strengths
- Identify at least 2-4 improvement areas
- Provide exactly 5 qualities with scores from 0 to 100
- Every score must be justified by its description
- Examples must be SPECIFIC and taken from real answers
- The overall assessment must be narrative and thorough
- Scores must be realistic and well calibrated

Respond ONLY with the JSON, no text before or after.`,
		sim.TotalTasks, title, sim.CompletedTasks, sim.TotalTasks, transcript.String())
}
