package portfolio

import "fmt"

// buildPrompt assembles the single instruction sent to the generation
// service. The response must be a bare JSON object matching recordSchema;
// any prose or markdown wrapping is treated as a parse failure upstream.
func buildPrompt(resumeText string) string {
	return fmt.Sprintf(`You are a professional career consultant. Analyze the following resume text and extract structured information.

Resume Text:
%s

Your task:
1. Extract the following fields: name, title/tagline, bio/about me, experience, projects, skills, contact information (email, phone, linkedin, github, website)
2. If the bio/about me section is missing, synthesize a professional 2-3 sentence summary based on the experience and skills listed
3. If project descriptions are brief, enhance them slightly to be more portfolio-friendly (but stay truthful to the content)
4. For experience and projects, include: title/role, organization/name, duration, description, and technologies/skills used

Return ONLY a valid JSON object with this exact structure:
{
    "name": "Full Name",
    "tagline": "Professional Title or Tagline",
    "bio": "Professional bio/about me section",
    "contact": {
        "email": "email@example.com",
        "phone": "+1234567890",
        "linkedin": "linkedin.com/in/username",
        "github": "github.com/username",
        "website": "yourwebsite.com"
    },
    "skills": ["skill1", "skill2", "skill3"],
    "experience": [
        {
            "role": "Job Title",
            "company": "Company Name",
            "duration": "Jan 2020 - Present",
            "description": "Brief description of responsibilities and achievements",
            "technologies": ["tech1", "tech2"]
        }
    ],
    "projects": [
        {
            "name": "Project Name",
            "duration": "2023",
            "description": "Project description highlighting key features and impact",
            "technologies": ["tech1", "tech2"],
            "link": "github.com/project or demo-link.com"
        }
    ],
    "education": [
        {
            "degree": "Degree Name",
            "institution": "University Name",
            "duration": "2015 - 2019",
            "details": "GPA, honors, relevant coursework"
        }
    ]
}

Important: Return ONLY the JSON object, no additional text or markdown formatting.`, resumeText)
}
