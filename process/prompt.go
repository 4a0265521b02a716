package process

import "strings"

const summarizePrompt = `
You are an expert at summarizing YouTube video content. 
Create a comprehensive, detailed summary of the following transcript in Markdown format.

Format your response using Markdown with:
- # for the main title
- ## for major sections
- ### for subsections
- **bold** for key points
- - or * for bullet points
- > for important quotes or highlights
- ` + "`code`" + ` for any technical terms or commands

Include:
- Main topics and key points
- Important details and examples
- Logical flow from start to end

Transcript: {transcript}

Detailed Summary (in Markdown):`

// RenderPrompt embeds the transcript verbatim in the summary instructions.
func RenderPrompt(transcript string) string {
	return strings.Replace(summarizePrompt, "{transcript}", transcript, 1)
}
