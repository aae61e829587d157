package profile

import "fmt"

// buildAnalysisPrompt asks the model for a fictitious but internally
// consistent professional profile, as strict JSON.
func buildAnalysisPrompt(desiredRole string) string {
	return fmt.Sprintf(`You are an expert career analyst. Create a realistic, complete professional profile for a candidate aspiring to the role of "%[1]s".

IMPORTANT: generate a FICTITIOUS but REALISTIC and internally CONSISTENT profile for a person aiming at the role of "%[1]s".

The profile must include:
- Technical skills appropriate for the role
- Plausible work experience leading towards this role
- Relevant education
- Relevant personal or open source projects
- Appropriate industry sectors

Consider the seniority implied by the requested role:
- "Junior" or "Entry-level": 0-2 years of experience
- "Mid-level" or unspecified: 2-5 years of experience
- "Senior": 5-8 years of experience
- "Lead" or "Principal": 8+ years of experience

The profile must be:
1. Realistic - dates, companies and technologies consistent with the professional timeline
2. Specific - concrete details on technologies, methods and results
3. Appropriate - skills and experience aligned with the desired role
4. Credible - the career path must make sense

IMPORTANT: return ONLY valid JSON in the format below, with no extra text or explanation.

Required JSON format:
{
  "role": "The exact role requested by the user: %[1]s",
  "seniority": "The appropriate seniority level (Junior, Mid-level, Senior, Lead, Principal, ...)",
  "sectors": ["2-4 relevant industry sectors"],
  "skills": [
    {"name": "Skill or technology name", "category": "Category (Frontend, Backend, DevOps, Design, Project Management, ...)", "proficiency": "Level appropriate for the seniority (Beginner, Intermediate, Advanced, Expert)"}
  ],
  "workExperiences": [
    {"company": "A credible company name (may be fictitious)", "position": "Job title consistent with the career path", "startDate": "YYYY-MM", "endDate": "YYYY-MM or Present", "description": "Role, responsibilities and results (2-4 sentences)", "technologies": ["technologies used"]}
  ],
  "education": [
    {"institution": "University or school name", "degree": "Degree type appropriate for the role", "field": "Field of study relevant to the role", "startDate": "YYYY", "endDate": "YYYY", "description": "Relevant thesis or academic projects"}
  ],
  "personalProjects": [
    {"name": "Project name", "description": "What the project is and why (2-3 sentences)", "technologies": ["technologies used"], "url": "A realistic fictitious URL", "repository": "A realistic fictitious repository URL"}
  ],
  "summary": "A concise professional summary (2-3 sentences) highlighting key strengths, relevant experience and career goals aligned with %[1]s"
}

Include 8-15 skills, 2-5 work experiences depending on seniority, 1-2 education entries and 1-3 personal projects.

REMEMBER:
- Return ONLY valid JSON, no extra text
- The profile must be internally consistent (dates must make sense, technologies must fit the period)
- Skills must be balanced and appropriate for the seniority
- Work experience must show a logical career progression`, desiredRole)
}
