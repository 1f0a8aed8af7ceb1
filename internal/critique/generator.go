// Package critique builds the two natural-language prompts that drive the
// critique-and-refine loop: a critique-seeking prompt that asks an expert
// reviewer to fault the current instruction, and a refinement-seeking
// prompt that asks for an improved instruction informed by that critique.
//
// Either prompt comes from a custom template in the domain configuration
// (with {name} placeholder substitution over a closed set per prompt
// kind) or, absent one, from a built-in default structure embedding the
// domain's knowledge blocks. Template rendering never fails: placeholders
// outside the kind's set are left verbatim.
package critique

import (
	"fmt"
	"strings"

	"github.com/promptforge/tacit/internal/knowledge"
)

// ImprovedPromptStart and ImprovedPromptEnd delimit the improved
// instruction in a refinement response, for unambiguous extraction.
const (
	ImprovedPromptStart = "<IMPROVED_PROMPT>"
	ImprovedPromptEnd   = "</IMPROVED_PROMPT>"
)

// Generator builds critique and refinement prompts for one domain.
type Generator struct {
	cfg knowledge.DomainConfig
}

// NewGenerator returns a Generator over the configuration.
func NewGenerator(cfg knowledge.DomainConfig) *Generator { return &Generator{cfg: cfg} }

// CritiquePrompt builds the critique-seeking prompt for an instruction and
// its example responses. Scores from a prior evaluation are optional and
// included as context when present.
func (g *Generator) CritiquePrompt(instruction, examples string, scores map[string]float64) string {
	if g.cfg.CritiqueTemplate != "" {
		return g.vars(instruction, examples, "", scores).renderCritique(g.cfg.CritiqueTemplate)
	}
	return g.defaultCritique(instruction, examples, scores)
}

// RefinementPrompt builds the refinement-seeking prompt from the
// instruction, example responses, and the critique text. The generated
// prompt instructs the model to wrap the improved instruction in the
// ImprovedPromptStart/End delimiter pair.
func (g *Generator) RefinementPrompt(instruction, examples, critiqueText string) string {
	if g.cfg.RefinementTemplate != "" {
		return g.vars(instruction, examples, critiqueText, nil).renderRefinement(g.cfg.RefinementTemplate)
	}
	return g.defaultRefinement(instruction, critiqueText)
}

func (g *Generator) vars(instruction, examples, critiqueText string, scores map[string]float64) templateVars {
	return templateVars{
		instruction:     instruction,
		examples:        examples,
		critique:        critiqueText,
		domainType:      g.cfg.DomainType,
		domainName:      g.cfg.DomainName,
		principles:      formatList(g.cfg.Knowledge.Principles),
		constraints:     formatList(g.cfg.Knowledge.Constraints),
		qualityCriteria: formatCriteria(g.cfg.Knowledge.QualityCriteria),
		thinkingStyles:  formatList(g.cfg.Knowledge.ThinkingStyles),
		scores:          formatScores(scores),
	}
}

// defaultCritique is the built-in critique prompt structure: persona
// framing, instruction, examples, knowledge blocks, optional scores, and
// the fixed five-point critique request.
func (g *Generator) defaultCritique(instruction, examples string, scores map[string]float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "당신은 %s 분야의 전문가입니다.\n", g.cfg.DomainName)
	b.WriteString("다음 프롬프트 지시문과 예제 응답을 평가하고 개선점을 제시하세요.\n\n")

	fmt.Fprintf(&b, "## 현재 프롬프트 지시문:\n%s\n\n", instruction)
	fmt.Fprintf(&b, "## 예제 응답:\n%s\n\n", examples)
	fmt.Fprintf(&b, "## 도메인 원칙 (이 원칙들이 잘 반영되었는지 확인):\n%s\n\n", formatList(g.cfg.Knowledge.Principles))
	fmt.Fprintf(&b, "## 도메인 제약조건 (위반사항이 없는지 확인):\n%s\n\n", formatList(g.cfg.Knowledge.Constraints))
	fmt.Fprintf(&b, "## 품질 평가 기준:\n%s\n", formatCriteria(g.cfg.Knowledge.QualityCriteria))

	if len(scores) > 0 {
		fmt.Fprintf(&b, "\n## 현재 평가 점수:\n%s\n", formatScores(scores))
	}

	b.WriteString(`
## 비평 요청:
위의 도메인 지식을 바탕으로 다음 관점에서 프롬프트를 비평해주세요:
1. 도메인 원칙 반영도: 핵심 원칙들이 충분히 반영되어 있는가?
2. 제약조건 준수: 위반 가능성이 있는 부분은 없는가?
3. 품질 기준 충족: 각 품질 기준에서 개선이 필요한 부분은?
4. 전문성 수준: 도메인 전문가 관점에서 부족한 점은?
5. 구체적 개선 제안: 어떻게 수정하면 더 나은 결과를 얻을 수 있는가?

비평 결과를 상세히 작성해주세요.
`)

	return b.String()
}

// defaultRefinement is the built-in refinement prompt structure: primary
// persona (or generic domain phrasing), instruction, critique, knowledge
// blocks, the fixed improvement checklist, and the delimiter instruction.
func (g *Generator) defaultRefinement(instruction, critiqueText string) string {
	expertContext := fmt.Sprintf("당신은 %s 분야의 전문가입니다.", g.cfg.DomainName)
	if persona, ok := g.cfg.Knowledge.PrimaryPersona(); ok {
		expertContext = fmt.Sprintf("당신은 %s로서, %s에 집중합니다.", persona.Role, persona.Focus)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "## 역할\n%s\n\n", expertContext)
	fmt.Fprintf(&b, "## 현재 프롬프트 지시문:\n%s\n\n", instruction)
	fmt.Fprintf(&b, "## 비평 내용:\n%s\n\n", critiqueText)
	fmt.Fprintf(&b, "## 도메인 핵심 원칙:\n%s\n\n", formatList(g.cfg.Knowledge.Principles))
	fmt.Fprintf(&b, "## 준수해야 할 제약조건:\n%s\n\n", formatList(g.cfg.Knowledge.Constraints))
	fmt.Fprintf(&b, "## 권장 사고방식:\n%s\n\n", formatList(g.cfg.Knowledge.ThinkingStyles))

	b.WriteString(`## 개선 요청:
위의 비평과 도메인 지식을 바탕으로 프롬프트를 개선해주세요.

개선 시 다음 사항을 반드시 포함하세요:
1. 도메인 원칙이 명시적으로 반영되도록 수정
2. 제약조건 위반을 방지하는 가이드라인 추가
3. 전문가 사고방식을 유도하는 지시문 포함
4. 품질 기준을 충족하도록 구체화

`)
	fmt.Fprintf(&b, "개선된 프롬프트를 %s%s 태그 안에 작성해주세요.\n", ImprovedPromptStart, ImprovedPromptEnd)

	return b.String()
}
