package session

// SampleJobDescription is loaded into the input box on request so users can
// try the extractor without a posting of their own.
const SampleJobDescription = `We are looking for a Senior Software Engineer to join our growing team.

About the Role:
You will be responsible for designing, developing, and maintaining scalable software solutions. You'll work closely with cross-functional teams to deliver high-quality products.

Requirements:
- 5+ years of experience in software development
- Strong proficiency in Python, JavaScript, and cloud technologies
- Experience with microservices architecture
- Bachelor's degree in Computer Science or related field
- Excellent problem-solving and communication skills

Preferred Qualifications:
- Master's degree in Computer Science
- Experience with AWS or Google Cloud Platform
- Knowledge of machine learning frameworks
- Previous experience in a startup environment

Benefits:
- Competitive salary: $120,000 - $150,000
- Remote work options
- Health, dental, and vision insurance
- 401(k) matching
- Flexible PTO
- Professional development budget

Location: Remote (US-based preferred)
Work Type: Remote/Hybrid`
