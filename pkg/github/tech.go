package github

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
)

// techMapping maps package names found in manifests to canonical technology names.
var techMapping = map[string]string{
	// JavaScript / TypeScript
	"react":         "React",
	"react-dom":     "React",
	"next":          "Next.js",
	"vue":           "Vue.js",
	"nuxt":          "Nuxt.js",
	"angular":       "Angular",
	"@angular/core": "Angular",
	"svelte":        "Svelte",
	"express":       "Express.js",
	"fastify":       "Fastify",
	"@nestjs/core":  "NestJS",
	"typescript":    "TypeScript",
	"tailwindcss":   "Tailwind CSS",
	"prisma":        "Prisma",
	"@prisma/client": "Prisma",
	"mongoose":      "MongoDB",
	"sequelize":     "Sequelize",
	"graphql":       "GraphQL",
	"apollo-server": "Apollo GraphQL",
	"socket.io":     "Socket.IO",
	"webpack":       "Webpack",
	"vite":          "Vite",
	"jest":          "Jest",
	"mocha":         "Mocha",
	"cypress":       "Cypress",
	"playwright":    "Playwright",

	// Python
	"django":         "Django",
	"flask":          "Flask",
	"fastapi":        "FastAPI",
	"sqlalchemy":     "SQLAlchemy",
	"pandas":         "Pandas",
	"numpy":          "NumPy",
	"tensorflow":     "TensorFlow",
	"pytorch":        "PyTorch",
	"torch":          "PyTorch",
	"scikit-learn":   "Scikit-learn",
	"sklearn":        "Scikit-learn",
	"keras":          "Keras",
	"celery":         "Celery",
	"redis":          "Redis",
	"pytest":         "Pytest",
	"pydantic":       "Pydantic",
	"alembic":        "Alembic",
	"beautifulsoup4": "Beautiful Soup",
	"scrapy":         "Scrapy",
	"requests":       "Requests",
	"httpx":          "HTTPX",
	"aiohttp":        "aiohttp",

	// Java
	"spring-boot": "Spring Boot",
	"hibernate":   "Hibernate",

	// Databases
	"pg":       "PostgreSQL",
	"psycopg2": "PostgreSQL",
	"mysql":    "MySQL",
	"mongodb":  "MongoDB",
	"pymongo":  "MongoDB",
	"sqlite3":  "SQLite",

	// Cloud / DevOps
	"aws-sdk":      "AWS",
	"boto3":        "AWS",
	"@aws-sdk":     "AWS",
	"google-cloud": "Google Cloud",
	"azure":        "Azure",
	"docker":       "Docker",
	"kubernetes":   "Kubernetes",
}

// extractTechStack derives a deduplicated technology list from the repo's
// manifest files and GitHub's language breakdown.
func (c *Client) extractTechStack(ctx context.Context, fullName string, languages map[string]int) []string {
	tech := map[string]struct{}{}

	if content, err := c.getFileContent(ctx, fullName, "package.json"); err == nil {
		for _, t := range parsePackageJSON(content) {
			tech[t] = struct{}{}
		}
	}
	if content, err := c.getFileContent(ctx, fullName, "requirements.txt"); err == nil {
		for _, t := range parseRequirementsTxt(content) {
			tech[t] = struct{}{}
		}
	}
	if content, err := c.getFileContent(ctx, fullName, "pyproject.toml"); err == nil {
		for _, t := range parsePyprojectTOML(content) {
			tech[t] = struct{}{}
		}
	}
	if _, err := c.getFileContent(ctx, fullName, "Cargo.toml"); err == nil {
		tech["Rust"] = struct{}{}
	}
	if _, err := c.getFileContent(ctx, fullName, "go.mod"); err == nil {
		tech["Go"] = struct{}{}
	}

	for lang := range languages {
		tech[lang] = struct{}{}
	}

	result := make([]string, 0, len(tech))
	for t := range tech {
		result = append(result, t)
	}
	sort.Strings(result)
	return result
}

func parsePackageJSON(content string) []string {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return nil
	}

	seen := map[string]struct{}{
		"Node.js":    {},
		"JavaScript": {},
	}
	for name := range manifest.Dependencies {
		if canonical, ok := techMapping[strings.ToLower(name)]; ok {
			seen[canonical] = struct{}{}
		}
	}
	for name := range manifest.DevDependencies {
		if canonical, ok := techMapping[strings.ToLower(name)]; ok {
			seen[canonical] = struct{}{}
		}
	}
	return setToSlice(seen)
}

func parseRequirementsTxt(content string) []string {
	seen := map[string]struct{}{"Python": {}}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// strip version specifiers and extras
		for _, sep := range []string{"==", ">=", "<=", "~=", ">", "<", "["} {
			if idx := strings.Index(line, sep); idx != -1 {
				line = line[:idx]
			}
		}
		if canonical, ok := techMapping[strings.ToLower(strings.TrimSpace(line))]; ok {
			seen[canonical] = struct{}{}
		}
	}
	return setToSlice(seen)
}

func parsePyprojectTOML(content string) []string {
	seen := map[string]struct{}{"Python": {}}

	lower := strings.ToLower(content)
	for pkg, canonical := range techMapping {
		if strings.Contains(lower, pkg) {
			seen[canonical] = struct{}{}
		}
	}
	return setToSlice(seen)
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
