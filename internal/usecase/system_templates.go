package usecase

import "resume-agent-backend/internal/domain"

// systemTemplates are seeded by InitSystemTemplates. Placeholders use
// {{NAME}} tokens, {{#ARRAY}}...{{/ARRAY}} loops and {{?FIELD}} guards.
var systemTemplates = []domain.Template{
	{
		Name:        "Classic Professional",
		IsSystem:    true,
		IsATSTested: true,
		Description: strPtr("Clean, ATS-friendly single-column resume template. Perfect for most job applications."),
		Category:    strPtr("professional"),
		Placeholders: map[string]interface{}{
			"NAME":      map[string]interface{}{"type": "text", "required": true},
			"EMAIL":     map[string]interface{}{"type": "text", "required": true},
			"PHONE":     map[string]interface{}{"type": "text", "required": false},
			"LOCATION":  map[string]interface{}{"type": "text", "required": false},
			"SUMMARY":   map[string]interface{}{"type": "text", "required": false},
			"PROJECTS":  map[string]interface{}{"type": "array", "min": 1, "max": 6},
			"SKILLS":    map[string]interface{}{"type": "array", "required": false},
			"EDUCATION": map[string]interface{}{"type": "array", "required": false},
		},
		LatexContent: `\documentclass[11pt,a4paper]{article}
\usepackage[margin=0.75in]{geometry}
\usepackage{enumitem}
\usepackage{hyperref}
\usepackage{titlesec}
\usepackage{xcolor}

\pagestyle{empty}
\setlength{\parindent}{0pt}
\titleformat{\section}{\large\bfseries}{}{0em}{}[\titlerule]
\titlespacing{\section}{0pt}{12pt}{6pt}

\begin{document}

\begin{center}
    {\LARGE\bfseries {{NAME}}}\\[4pt]
    {{EMAIL}} | {{PHONE}} | {{LOCATION}}\\
    \href{{{GITHUB}}}{GitHub} | \href{{{LINKEDIN}}}{LinkedIn}
\end{center}

{{?SUMMARY}}
\section{Summary}
{{SUMMARY}}
{{/SUMMARY}}

{{?PROJECTS}}
\section{Projects}
{{#PROJECTS}}
\textbf{{{title}}} {{?url}}| \href{{{url}}}{Link}{{/url}} \hfill {{dates}}\\
\textit{{{technologies}}}
\begin{itemize}[leftmargin=*, nosep]
{{#highlights}}
    \item {{.}}
{{/highlights}}
\end{itemize}
{{/PROJECTS}}
{{/PROJECTS}}

{{?SKILLS}}
\section{Skills}
{{SKILLS}}
{{/SKILLS}}

{{?EDUCATION}}
\section{Education}
{{#EDUCATION}}
\textbf{{{degree}}} \hfill {{dates}}\\
\textit{{{school}}} \hfill {{location}}
{{/EDUCATION}}
{{/EDUCATION}}

\end{document}
`,
	},
	{
		Name:        "Compact Minimal",
		IsSystem:    true,
		IsATSTested: true,
		Description: strPtr("Dense single-page layout that fits more projects without clutter."),
		Category:    strPtr("minimal"),
		Placeholders: map[string]interface{}{
			"NAME":     map[string]interface{}{"type": "text", "required": true},
			"EMAIL":    map[string]interface{}{"type": "text", "required": true},
			"HEADLINE": map[string]interface{}{"type": "text", "required": false},
			"PROJECTS": map[string]interface{}{"type": "array", "min": 1, "max": 8},
			"SKILLS":   map[string]interface{}{"type": "array", "required": false},
		},
		LatexContent: `\documentclass[10pt,a4paper]{article}
\usepackage[margin=0.6in]{geometry}
\usepackage{enumitem}
\usepackage{hyperref}
\usepackage{titlesec}

\pagestyle{empty}
\setlength{\parindent}{0pt}
\titleformat{\section}{\bfseries\scshape}{}{0em}{}[\titlerule]
\titlespacing{\section}{0pt}{8pt}{4pt}

\begin{document}

{\huge\bfseries {{NAME}}} \hfill {{EMAIL}}\\
{{?HEADLINE}}\textit{{{HEADLINE}}}{{/HEADLINE}}

{{?SKILLS}}
\section{Skills}
{{SKILLS}}
{{/SKILLS}}

{{?PROJECTS}}
\section{Projects}
{{#PROJECTS}}
\textbf{{{title}}} --- \textit{{{technologies}}} \hfill {{?url}}\href{{{url}}}{Link}{{/url}}
\begin{itemize}[leftmargin=*, nosep, itemsep=1pt]
{{#highlights}}
    \item {{.}}
{{/highlights}}
\end{itemize}
{{/PROJECTS}}
{{/PROJECTS}}

{{?EDUCATION}}
\section{Education}
{{#EDUCATION}}
\textbf{{{degree}}}, {{school}} \hfill {{dates}}
{{/EDUCATION}}
{{/EDUCATION}}

\end{document}
`,
	},
}

func strPtr(s string) *string { return &s }
