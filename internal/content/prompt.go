// Package content turns a (location, page type) tuple into a generation
// request and maps the model's free-text reply back into structured
// content. Both halves are pure transformations; all I/O lives in the
// clients and workflows that call them.
package content

import (
	"fmt"
	"strings"

	"github.com/sells-group/localpages/internal/model"
)

// Request carries everything the prompt builder needs for one generation.
type Request struct {
	Service             string
	City                string
	State               string
	PageType            model.PageType
	Topic               string
	Neighborhood        string
	TargetWordCount     int
	TargetQuestionCount int
}

const basePromptHeader = `You are an expert SEO content writer specializing in local service businesses.
Generate comprehensive, engaging, and SEO-optimized content for a %s business.

TARGET LOCATION: %s, %s
PAGE TYPE: %s
`

const basePromptRequirements = `TARGET WORD COUNT: %d words
TARGET QUESTIONS: %d questions

CONTENT REQUIREMENTS:
1. Write naturally and conversationally while maintaining professionalism
2. Include specific local references (streets, landmarks, neighborhoods)
3. Answer real customer questions comprehensively
4. Include pricing guidance and permit information
5. Use semantic SEO - naturally include related terms and concepts
6. Structure content with clear headings (H2, H3)
7. Write for featured snippets (direct answers, tables, lists)
8. Include actionable advice and practical tips

RESPONSE FORMAT (JSON):
{
  "title": "SEO-optimized page title with primary keyword",
  "metaDescription": "Compelling 155-character meta description with CTA",
  "content": "Full HTML content with proper heading structure",
  "questions": [
    {
      "question": "Question text",
      "answer": "Detailed answer (200-400 words)"
    }
  ],
  "keywords": ["primary keyword", "semantic keyword 1", "semantic keyword 2", ...]
}

`

const mainCityInstructions = `
MAIN CITY PAGE FOCUS:
- Primary keyword: "%[1]s %[2]s"
- Cover ALL aspects: residential, commercial, construction, roofing
- Include comprehensive pricing guide (by size)
- Detail permit requirements and regulations
- List major neighborhoods served
- Include local dump/transfer station information
- Add section on delivery areas and restrictions
- Include real customer reviews/testimonials structure
- Cover container sizes (10, 20, 30, 40 yard) in detail

EXAMPLE QUESTIONS TO ANSWER:
- How much does %[1]s cost in %[2]s?
- What size do I need for my project?
- Do I need a permit in %[2]s?
- How long can I keep it?
- What can't go in the container?
- Same-day %[1]s options
- Weight limits and overage charges
`

const topicInstructions = `
TOPIC PAGE FOCUS (%[1]s):
- Target keyword: "%[1]s %[2]s %[3]s"
- Deep dive into this specific use case
- Include project-specific advice
- Detail typical project timelines
- List what materials are commonly disposed
- Provide size recommendations for this project type
- Include cost breakdowns specific to %[1]s
- Add safety considerations
- Include local regulations specific to %[1]s projects

EXAMPLE QUESTIONS FOR %[4]s:
- What size container for a %[1]s project?
- How much does %[1]s %[2]s cost?
- What can I throw away from %[1]s?
- %[1]s disposal tips
- Best practices for %[1]s waste disposal
`

const neighborhoodInstructions = `
NEIGHBORHOOD PAGE FOCUS (%[1]s):
- Target keyword: "%[2]s %[1]s"
- Hyper-local content with specific street names
- Mention local landmarks near %[1]s
- Include %[1]s-specific delivery considerations
- Detail permit requirements for %[1]s
- Discuss HOA considerations if applicable
- Include parking/placement tips for %[1]s streets
- Mention nearby dump locations
- Include %[1]s demographics context

EXAMPLE QUESTIONS FOR %[3]s:
- %[2]s delivery to %[1]s
- Parking requirements in %[1]s
- Best container sizes for %[1]s homes
- %[1]s permit information
- HOA rules in %[1]s
`

// BuildPrompt assembles the full generation request text: the shared
// role/context preamble with targets and the required JSON output shape,
// followed by the page-type-specific instruction block.
func BuildPrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, basePromptHeader, req.Service, req.City, req.State, req.PageType)
	if req.Topic != "" {
		fmt.Fprintf(&b, "TOPIC: %s\n", req.Topic)
	}
	if req.Neighborhood != "" {
		fmt.Fprintf(&b, "NEIGHBORHOOD: %s\n", req.Neighborhood)
	}
	fmt.Fprintf(&b, basePromptRequirements, req.TargetWordCount, req.TargetQuestionCount)

	b.WriteString(pageTypeInstructions(req))

	return b.String()
}

// pageTypeInstructions returns the instruction block for the request's
// page type. Unknown page types get no extra instructions; validation
// happens upstream in the research workflow.
func pageTypeInstructions(req Request) string {
	switch req.PageType {
	case model.PageTypeMainCity:
		return fmt.Sprintf(mainCityInstructions, req.Service, req.City)
	case model.PageTypeTopic:
		return fmt.Sprintf(topicInstructions, req.Topic, req.Service, req.City, strings.ToUpper(req.Topic))
	case model.PageTypeNeighborhood:
		return fmt.Sprintf(neighborhoodInstructions, req.Neighborhood, req.Service, strings.ToUpper(req.Neighborhood))
	default:
		return ""
	}
}
