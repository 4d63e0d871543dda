package resumeagent

import (
	"fmt"
	"strings"
)

// systemPrompt pins the model to the provided data. The rules are written
// as hard constraints because the generator must never invent facts.
const systemPrompt = `You are a professional resume LaTeX formatter. Your ONLY job is to fill a LaTeX template with provided user data.

CRITICAL RULES - VIOLATION WILL CAUSE ERRORS:

1. GROUNDING REQUIREMENT:
   - ONLY use information explicitly provided in the <user_data> section
   - NEVER invent, assume, or hallucinate ANY information
   - This includes: projects, skills, companies, dates, achievements, metrics, or ANY facts

2. MISSING DATA HANDLING:
   - If required data is missing, output "[REQUIRED: field_name]" as placeholder
   - If optional data is missing, omit that section entirely
   - NEVER fill gaps with invented information

3. ONE-PAGE CONSTRAINT:
   - Resume MUST fit on a single page (maximum)
   - Keep descriptions concise and impactful
   - Each project should have EXACTLY 3 single-line bullet points (no more, no less)
   - Use compact LaTeX formatting (smaller margins, tight spacing if needed)
   - Prioritize most important information

4. ALLOWED TRANSFORMATIONS:
   - Rephrase for clarity and ATS optimization (but preserve ALL facts)
   - Condense bullet points to single lines (max 80-100 characters each)
   - Reorder bullet points for impact
   - Adjust formatting to match template structure
   - Fix grammar and spelling
   - Use technical terminology and industry-standard terms

5. FORBIDDEN TRANSFORMATIONS:
   - Adding metrics not in original data (e.g., "improved by 50%")
   - Adding technologies not listed
   - Inventing project features
   - Creating achievements not mentioned
   - Adding company names or dates not provided

6. LATEX SYNTAX REQUIREMENTS (CRITICAL):
   - Every opening brace { MUST have a matching closing brace }
   - Never use \\ at the start of a line or on an empty line
   - Escape special characters: & % $ # _ { } ~ ^ \
   - Always close all LaTeX commands properly

7. OUTPUT FORMAT:
   - Return ONLY valid LaTeX code
   - Preserve all template commands exactly

VERIFICATION STEP:
Before outputting, mentally verify each fact against <user_data>.
If you cannot find the source for a claim, DO NOT include it.`

// UserData is everything the generator may draw on.
type UserData struct {
	Personal  map[string]string
	Skills    []string
	Projects  []ProjectData
	Education []EducationData
}

type ProjectData struct {
	Title        string
	Description  string
	Technologies []string
	Highlights   []string
	URL          string
	Dates        string
}

type EducationData struct {
	School string
	Degree string
	Field  string
	Dates  string
}

// JDContext optionally tailors the output to a job posting.
type JDContext struct {
	Title          string
	Company        string
	RequiredSkills []string
}

// buildPrompt assembles the generation prompt from template, data and
// optional job context.
func buildPrompt(template string, data *UserData, jd *JDContext) string {
	var b strings.Builder

	b.WriteString("Fill this LaTeX resume template with the provided user data.\n\n")
	b.WriteString("<template>\n")
	b.WriteString(template)
	b.WriteString("\n</template>\n\n")
	b.WriteString("<user_data>\n")
	b.WriteString(FormatUserData(data))
	b.WriteString("\n</user_data>\n")

	if jd != nil {
		skills := jd.RequiredSkills
		if len(skills) > 10 {
			skills = skills[:10]
		}
		fmt.Fprintf(&b, `
<jd_context>
Target Role: %s
Company: %s
Key Requirements: %s

Use this context to:
- Prioritize skills matching the requirements
- Order projects by relevance
- Tailor language to the role
DO NOT add any information not in user_data.
</jd_context>
`, orNA(jd.Title), orNA(jd.Company), strings.Join(skills, ", "))
	}

	b.WriteString(`
CRITICAL FORMATTING REQUIREMENTS:
- Resume MUST fit on ONE PAGE ONLY
- Each project must have EXACTLY 3 bullet points (single line each, max 80-100 characters)
- Keep all descriptions concise and impactful
- Use compact spacing and formatting

INSTRUCTIONS:
1. Replace all placeholders ({{PLACEHOLDER}}) with corresponding user data
2. For {{#ARRAY}}...{{/ARRAY}} sections, iterate over the array
3. For each PROJECT bullet point start with strong action verbs
   (Developed, Architected, Implemented, Integrated, Optimized, Designed)
   and include specific technologies from the project's stack.
   For project URLs use \href{url}{Link}, do NOT display the full URL text.
4. For missing or empty data COMPLETELY DELETE the entire section,
   including its header. An empty array means NO DATA. Never leave
   commands with blank arguments.
5. Include ALL education entries from the data.
6. Preserve all LaTeX commands and structure for sections that HAVE data.
7. VERIFY: count all braces - they must be balanced.
8. Return ONLY the filled LaTeX code, no explanations.

OUTPUT: Complete, valid LaTeX code ready for compilation (single page).`)

	return b.String()
}

// FormatUserData renders the user data as the labeled plain-text block
// the prompt refers to.
func FormatUserData(data *UserData) string {
	var parts []string

	if len(data.Personal) > 0 {
		parts = append(parts, "PERSONAL INFORMATION:")
		for _, key := range personalFieldOrder {
			if value, ok := data.Personal[key]; ok && value != "" {
				parts = append(parts, fmt.Sprintf("  %s: %s", key, value))
			}
		}
	}

	if len(data.Skills) > 0 {
		parts = append(parts, "\nSKILLS: "+strings.Join(data.Skills, ", "))
	}

	if len(data.Projects) > 0 {
		parts = append(parts, "\nPROJECTS:")
		for i, proj := range data.Projects {
			parts = append(parts, fmt.Sprintf("\n  Project %d:", i+1))
			parts = append(parts, "    Title: "+orNA(proj.Title))
			parts = append(parts, "    Description: "+orNA(proj.Description))
			if len(proj.Technologies) > 0 {
				parts = append(parts, "    Technologies: "+strings.Join(proj.Technologies, ", "))
			}
			if len(proj.Highlights) > 0 {
				parts = append(parts, "    Achievements:")
				for _, h := range proj.Highlights {
					parts = append(parts, "      - "+h)
				}
			}
			if proj.URL != "" {
				parts = append(parts, "    URL: "+proj.URL)
			}
			if proj.Dates != "" {
				parts = append(parts, "    Dates: "+proj.Dates)
			}
		}
	}

	if len(data.Education) > 0 {
		parts = append(parts, "\nEDUCATION:")
		for i, edu := range data.Education {
			parts = append(parts, fmt.Sprintf("\n  Education %d:", i+1))
			parts = append(parts, "    School: "+orNA(edu.School))
			parts = append(parts, "    Degree: "+orNA(edu.Degree))
			if edu.Field != "" {
				parts = append(parts, "    Field: "+edu.Field)
			}
			if edu.Dates != "" {
				parts = append(parts, "    Dates: "+edu.Dates)
			}
		}
	}

	return strings.Join(parts, "\n")
}

// personalFieldOrder keeps prompt output deterministic across runs.
var personalFieldOrder = []string{
	"name", "email", "phone", "location", "headline",
	"summary", "linkedin_url", "website",
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
