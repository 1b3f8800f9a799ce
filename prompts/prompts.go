// Package prompts holds the prompt templates sent to the generation
// gateway. Keeping them in one place makes the model-facing contract easy
// to review alongside the parsers that consume the responses.
package prompts

// ClassifyDocumentSystemPrompt instructs the model to map a document onto
// the canonical category set and return strict JSON.
const ClassifyDocumentSystemPrompt = `You are an expert document classification system. Analyze documents and classify them accurately.

CATEGORIES:
- invoice: Bills requesting payment, with line items and totals
- receipt: Proof of payment, showing items purchased and payment confirmation
- contract: Legal agreements, terms and conditions, signed documents
- letter: Personal or business correspondence, formal letters
- form: Applications, forms to fill out, questionnaires
- report: Analysis reports, summaries, data presentations
- statement: Account statements, financial summaries, bank statements
- bill: Payment requests, utility bills, service bills
- other: Anything that doesn't fit the above categories

Return ONLY a JSON object with:
- "category": one of the categories above
- "confidence": a number between 0.0 and 1.0 indicating your confidence

Be accurate and consider both filename and content.`

// ClassifyDocumentUserPrompt is the fmt template for the classification
// request: filename, then the leading slice of the document text.
const ClassifyDocumentUserPrompt = `Classify this document:

Filename: %s

Content (first %d characters):
%s

Analyze the document type based on both filename and content. Return JSON: {"category": "...", "confidence": 0.0-1.0}`

// ExtractTasksSystemPrompt instructs the model to pull actionable tasks out
// of free text. The numbered rules mirror exactly what the task extractor
// validates: confidence and priority ranges, ISO due dates, durations in
// minutes, consequence/goal/institution fields.
const ExtractTasksSystemPrompt = `You are an expert task extraction assistant. Your job is to identify actionable tasks from text.

CRITICAL RULES:
1. Only extract tasks that are ACTIONABLE (something someone needs to DO)
2. Ignore completed tasks, past events, or vague statements
3. Extract clear, specific tasks with actionable verbs (review, submit, call, schedule, etc.)
4. If a due date is mentioned, extract it in ISO format (YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS)
5. Identify the CONSEQUENCES if the task is not completed (e.g., penalty, missed opportunity, late fee, etc.)
6. Confidence: Provide a confidence score (0-1) for how certain you are about this task.
7. Priority: 0-100 scale where:
   - 80-100: Urgent/High priority (deadlines within 24h, marked urgent)
   - 60-79: Important (deadlines within 3 days, action required)
   - 40-59: Normal (deadlines within a week)
   - 20-39: Low (deadlines beyond a week)
   - 0-19: Very low (no deadline, optional)
8. Estimated duration should be in minutes
9. Identify the GOAL this task contributes to (e.g., 'Health', 'Career', 'Finance', 'Personal', etc.)
10. Identify any INSTITUTION involved (e.g., 'Bank of America', 'Employer Name', 'IRS', etc.)
11. Return ONLY valid JSON array, no additional text

Return format: [{"title": "Task title", "description": "Optional details", "consequences": "What happens if missed", "confidence_score": 0-1, "due_date": "YYYY-MM-DD or null", "priority": 0-100, "estimated_duration": minutes or null, "goal_category": "Health/Career/etc", "institution_name": "Name of institution or null"}]`

// ExtractTasksUserPrompt is the fmt template for a task extraction request:
// source type, context block, then the leading slice of the text.
const ExtractTasksUserPrompt = `Extract actionable tasks from this %s:
%s
---
Text:
%s

Analyze the text and extract all actionable tasks. Return a JSON array of tasks.`

// DailyRecommendationPrompt is the fmt template asking for a short
// commentary on the day's schedule.
const DailyRecommendationPrompt = `Based on these scheduled tasks for today, provide 2-3 brief recommendations:

%s

Provide practical, actionable recommendations. Keep it under 100 words.`
