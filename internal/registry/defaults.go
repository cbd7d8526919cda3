package registry

// defaultFile is the compiled-in registry: the standard domain taxonomy
// and agent roster used when no registry file is supplied. Keyword lists
// favor multi-word phrases over very short tokens where a bare token
// would match inside unrelated words ("plan" inside "explanation").
func defaultFile() File {
	return File{
		Domains: []Domain{
			{Name: "frontend", Keywords: []string{
				"react", "vue", "angular", "svelte", "component", "frontend",
				"css", "html", "tailwind", "stylesheet", "spinner", "button",
				"modal", "widget", "layout", "responsive", "browser",
				"accessibility", "animation", "user interface",
			}},
			{Name: "backend", Keywords: []string{
				"api", "endpoint", "rest api", "restful", "graphql", "grpc",
				"server", "backend", "service", "middleware", "handler",
				"authentication", "authorization", "jwt", "token", "session",
				"webhook", "business logic", "controller", "queue",
			}},
			{Name: "database", Keywords: []string{
				"database", "sql", "postgres", "postgresql", "mysql", "sqlite",
				"mongodb", "redis", "schema", "migration", "query", "storage",
				"persistence", "transaction", "index",
			}},
			{Name: "testing", Keywords: []string{
				"test", "unit test", "integration test", "e2e", "end-to-end",
				"coverage", "mock", "assertion", "regression", "tdd",
				"test suite", "flaky", "quality assurance",
			}},
			{Name: "security", Keywords: []string{
				"security", "secure", "authentication", "authorization",
				"encryption", "vulnerability", "owasp", "xss", "csrf",
				"injection", "password", "oauth", "jwt", "secret", "audit",
				"cve", "exploit", "sanitize", "permission",
			}},
			{Name: "performance", Keywords: []string{
				"performance", "latency", "throughput", "optimization",
				"optimize", "profiling", "benchmark", "cache", "caching",
				"slow", "bottleneck", "memory leak", "load time",
			}},
			{Name: "devops", Keywords: []string{
				"deploy", "docker", "kubernetes", "k8s", "container", "helm",
				"terraform", "ansible", "ci/cd", "pipeline", "github actions",
				"jenkins", "monitoring", "prometheus", "grafana", "rollback",
				"release", "infrastructure", "provisioning",
			}},
			{Name: "architecture", Keywords: []string{
				"architecture", "design pattern", "microservice", "monolith",
				"refactor", "event-driven", "scalability", "coupling",
				"cohesion", "boundary", "hexagonal", "clean architecture",
				"domain model", "system design", "adr", "technical debt",
			}},
			{Name: "specification", Keywords: []string{
				"specification", "spec", "requirement", "user story",
				"acceptance criteria", "prd", "scope", "clarify",
				"clarification", "stakeholder", "use case",
			}},
			{Name: "tasks", Keywords: []string{
				"task breakdown", "task list", "subtask", "backlog",
				"estimate", "estimation", "milestone", "roadmap", "sprint",
				"planning", "prioritize", "priority", "kanban",
			}},
			{Name: "integration", Keywords: []string{
				"integration", "integrate", "third-party", "external api",
				"sdk", "webhook", "oauth", "payment", "stripe", "sync",
				"connector", "data import", "data export",
			}},
		},
		Agents: []Agent{
			{Name: "frontend-specialist", Department: "engineering", Domains: []string{"frontend"}},
			{Name: "backend-architect", Department: "engineering", Domains: []string{"backend"}},
			{Name: "database-specialist", Department: "data", Domains: []string{"database"}},
			{Name: "test-engineer", Department: "quality", Domains: []string{"testing"}},
			{Name: "security-specialist", Department: "security", Domains: []string{"security"}},
			{Name: "performance-engineer", Department: "operations", Domains: []string{"performance"}},
			{Name: "devops-engineer", Department: "operations", Domains: []string{"devops"}},
			{Name: "solution-architect", Department: "architecture", Domains: []string{"architecture"}},
			{Name: "spec-writer", Department: "product", Domains: []string{"specification"}},
			{Name: "task-planner", Department: "product", Domains: []string{"tasks"}},
			{Name: "integration-engineer", Department: "engineering", Domains: []string{"integration"}},
			{Name: "fullstack-developer", Department: "engineering", Domains: []string{"frontend", "backend"}},
			{Name: "project-coordinator", Department: "coordination"},
		},
		Coordinator: "project-coordinator",
		Threshold:   DefaultThreshold,
	}
}

// Default returns the compiled-in registry. The defaults are validated by
// tests; a construction failure here means the compiled-in data itself is
// broken, so it panics rather than returning an error every caller would
// have to thread through.
func Default() *Registry {
	r, err := New(defaultFile())
	if err != nil {
		panic("registry: compiled-in defaults are invalid: " + err.Error())
	}
	return r
}
