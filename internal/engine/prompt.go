package engine

// LLM prompt templates: data only, no logic.

// summaryPrompt asks for a two-field JSON summary of a video transcript.
// Args: transcript text, embedded verbatim.
const summaryPrompt = `Based on the following YouTube transcript, return a brief summary in this JSON format only:
{
  "topic_name": "name of topic",
  "topic_summary": "summary of topic"
}

Respond with the JSON object only. No markdown, no explanation, no other keys.

Transcript:
"""
%s
"""`
