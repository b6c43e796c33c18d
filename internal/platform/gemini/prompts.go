package gemini

// composePromptTemplate asks the model for a JSON document matching
// domain.Resume. Collected inputs that failed upstream arrive as explicit
// "[unavailable: ...]" markers; the model is told to work around them rather
// than invent data.
const composePromptTemplate = `You are an expert resume writer specializing in ATS-friendly formatting and keyword optimization.

Using the following inputs, generate a complete resume in structured JSON format matching this schema exactly:
{
  "personal_info": {"<field>": "<value>"},
  "summary": "...",
  "skills": {"frontend": [], "backend": [], "devops": [], "cloud": [], "ai_ml": [], "tools": []},
  "experience": [{"title": "...", "company": "...", "duration": "...", "location": "...", "bullets": []}],
  "education": [],
  "projects": [{"name": "...", "commits": 0, "description": "...", "bullets": []}],
  "keywords": []
}

Be concise and impactful. An input marked "[unavailable: ...]" could not be collected; simply omit what it would have provided, never fabricate it.

GitHub Data:
{{.GitHubData}}

Portfolio Content:
{{.PortfolioData}}

JD Keywords to Highlight:
{{.JDKeywords}}

Old Resume (if any):
{{.OldResumeText}}

User Additions (manual updates):
{{.UserAdditions}}

User Feedback or Requested Changes:
{{.UserFeedback}}

Respond only with the JSON resume.`

// keywordsPromptTemplate mirrors the extraction prompt of the original
// keyword tooling: a flat comma-separated list, no labels or categories.
const keywordsPromptTemplate = `Extract key skills, action verbs, and technologies from this job description, or any keywords which can be used in a resume to improve its ATS score. Return only the keywords as a comma-separated list, without any labels or categories. Avoid prefixes like "skills:", "action verbs:", or "technologies:". Just list the raw terms:

{{.JobDescription}}`
