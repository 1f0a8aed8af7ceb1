package domains

import "github.com/promptforge/tacit/internal/knowledge"

// EnglishQuestion returns the English exam question authoring domain
// configuration, covering Korean CSAT-style multiple choice items. Unlike
// the consultation domains this one validates output structure: a question
// must carry numbered answer choices.
func EnglishQuestion() knowledge.DomainConfig {
	k := knowledge.DomainKnowledge{
		Principles: []string{
			"문항은 측정하려는 능력(타당도)을 정확히 측정해야 한다",
			"지문과 선택지는 명확하고 중의성이 없어야 한다",
			"정답은 지문 근거로 유일하게 도출되어야 한다",
			"오답 선택지는 그럴듯하되 명백히 틀려야 한다 (매력적 오답)",
			"난이도는 대상 학습자 수준에 맞춰야 한다",
			"교육과정 성취기준과 연계되어야 한다",
			"문화적 편향이나 배경지식 의존을 피한다",
			"선택지 길이와 형식을 균형 있게 구성한다",
		},
		Constraints: []string{
			"정답이 둘 이상 성립하는 문항 금지",
			"지문 없이 풀 수 있는 문항 금지",
			"문법적으로 틀린 영어 지문/선택지 금지",
			"특정 배경지식이 있어야만 풀 수 있는 문항 금지",
			"선택지 번호 체계 없이 출제 금지",
			"저작권 있는 지문의 무단 사용 금지",
		},
		QualityCriteria: []knowledge.QualityCriterion{
			{
				Name:             "타당도",
				Weight:           0.25,
				Description:      "측정 목표 능력을 정확히 측정하는 정도",
				EvaluationPrompt: "이 문항이 측정하려는 능력을 정확히 측정하는가?",
			},
			{
				Name:             "난이도 적절성",
				Weight:           0.20,
				Description:      "대상 학습자 수준에 맞는 난이도",
				EvaluationPrompt: "이 문항의 난이도가 적절한가?",
			},
			{
				Name:             "명확성",
				Weight:           0.20,
				Description:      "발문과 선택지의 명확성, 중의성 없음",
				EvaluationPrompt: "이 문항이 명확한가?",
			},
			{
				Name:             "변별도",
				Weight:           0.15,
				Description:      "상위권과 하위권을 구분하는 능력",
				EvaluationPrompt: "이 문항이 학습자 수준을 변별하는가?",
			},
			{
				Name:             "오답 매력도",
				Weight:           0.10,
				Description:      "오답 선택지가 그럴듯하게 구성된 정도",
				EvaluationPrompt: "오답 선택지가 매력적으로 구성되었는가?",
			},
			{
				Name:             "교육과정 연계",
				Weight:           0.10,
				Description:      "교육과정 성취기준과의 연계성",
				EvaluationPrompt: "이 문항이 교육과정과 연계되는가?",
			},
		},
		ThinkingStyles: []string{
			"측정 목표 설정 → 지문 선정 → 발문 작성 → 선택지 구성 → 검토 순서로 접근",
			"정답 도출 경로를 역으로 검증 (지문 근거 확인)",
			"각 오답이 매력적인 이유와 틀린 이유를 명시",
			"학습자 입장에서 풀이 과정을 시뮬레이션",
			"유사 기출 문항과 난이도 비교",
		},
		ExpertPersonas: []knowledge.ExpertPersona{
			{
				Role:             "수능 영어 출제위원",
				Focus:            "수능형 문항 설계 및 난이도 조절",
				Background:       "수능/모의평가 출제 경험, 영어교육 전공",
				ThinkingApproach: "평가 목표와 성취기준에 기반한 체계적 문항 설계",
			},
			{
				Role:             "영어교육 평가 전문가",
				Focus:            "문항 타당도와 변별도 분석",
				Background:       "언어평가론 전공, 문항 분석 연구 경험",
				ThinkingApproach: "측정학적 관점의 문항 품질 검증",
			},
			{
				Role:             "현직 고등학교 영어교사",
				Focus:            "학습자 수준에 맞는 실전 문항",
				Background:       "고등학교 영어 수업 및 내신 출제 경험",
				ThinkingApproach: "학습자가 실제로 겪는 어려움 중심의 검토",
			},
		},
		Terminology: map[string]string{
			"타당도":    "문항이 측정하려는 능력을 실제로 측정하는 정도",
			"변별도":    "문항이 상위권과 하위권 학습자를 구분하는 정도",
			"매력적 오답": "그럴듯해 보이지만 지문 근거상 틀린 선택지",
			"발문":     "문항에서 무엇을 묻는지 제시하는 질문 문장",
			"성취기준":   "교육과정에서 정한 학습 도달 목표",
		},
		Patterns: []string{
			"발문 → 지문 → ①~⑤ 선택지 → 정답 및 해설 순서로 구성",
			"선택지는 ①②③④⑤ 번호 체계 사용",
			"해설에 정답 근거와 오답 이유를 함께 제시",
		},
		AntiPatterns: []string{
			"정답이 복수로 성립하는 선택지 구성",
			"지문과 무관하게 상식으로 풀리는 발문",
			"한 선택지만 눈에 띄게 길거나 짧은 구성",
			"해설 없는 정답 제시",
		},
	}

	caseLibrary := knowledge.CaseLibrary{
		CriticalCases: []knowledge.CaseExample{
			{
				Question:          "다음 글의 주제로 가장 적절한 것을 고르는 문항을 만들어주세요",
				ExpectedElements:  []string{"①", "②", "③", "④", "⑤", "정답", "해설"},
				ForbiddenElements: []string{"정답 없음"},
				Category:          "주제 추론",
				Difficulty:        "critical",
				Explanation:       "주제 추론 문항은 5지선다와 해설을 갖춰야 함",
			},
		},
		EdgeCases: []knowledge.CaseExample{
			{
				Question:          "빈칸 추론 문항을 만들어주세요",
				ExpectedElements:  []string{"빈칸", "①", "⑤", "근거", "해설"},
				ForbiddenElements: []string{"배경지식"},
				Category:          "빈칸 추론",
				Difficulty:        "medium",
				Explanation:       "빈칸 추론은 지문 내 논리 근거가 명확해야 함",
			},
		},
		CommonCases: []knowledge.CaseExample{
			{
				Question:         "어법 문항을 만들어주세요",
				ExpectedElements: []string{"밑줄", "어법", "①", "해설"},
				Category:         "어법",
				Difficulty:       "easy",
				Explanation:      "어법 문항의 기본 형식",
			},
		},
	}

	return knowledge.DomainConfig{
		DomainType:         "english_question",
		DomainName:         "영어 문항 출제",
		Description:        "수능형 영어 평가 문항 출제를 위한 도메인 설정. 타당도와 변별도를 갖춘 5지선다형 문항 생성을 목표로 합니다.",
		Knowledge:          k,
		CritiqueTemplate:   englishCritiqueTemplate,
		RefinementTemplate: englishRefinementTemplate,
		CaseLibrary:        caseLibrary,
		Metadata: map[string]any{
			"version":      "1.0.0",
			"last_updated": "2024-01-01",
			"references": []any{
				"2015 개정 영어과 교육과정",
				"수능 영어 영역 출제 기조",
			},
		},
		Validators: []map[string]any{
			{
				"type":            "RegexValidator",
				"pattern":         `[①②③④⑤]|[1-5]\)|[A-E]\)`,
				"name":            "Choice Numbering Check",
				"description":     "Question must contain numbered answer choices",
				"failure_message": "문항에 선택지 번호 체계(①~⑤ 등)가 포함되어야 합니다.",
			},
			{
				"type":            "KeywordValidator",
				"keywords":        []any{"정답", "해설"},
				"must_include":    true,
				"name":            "Answer Key Check",
				"description":     "Question must include answer and explanation",
				"failure_message": "문항에 정답과 해설이 포함되어야 합니다.",
			},
		},
	}
}

const englishCritiqueTemplate = `당신은 영어 평가 문항 출제 전문가입니다. 다음 프롬프트와 생성된 문항을 출제 전문가 관점에서 비평해주세요.

## 현재 프롬프트 지시문:
{instruction}

## 생성된 예제 문항:
{examples}

## 출제 핵심 원칙:
{principles}

## 준수해야 할 제약조건:
{constraints}

## 품질 평가 기준:
{quality_criteria}

## 비평 관점:
1. **타당도**: 측정 목표 능력을 정확히 측정하는가?
2. **정답 유일성**: 정답이 지문 근거로 유일하게 도출되는가?
3. **오답 매력도**: 오답 선택지가 그럴듯하게 구성되었는가?
4. **형식**: ①~⑤ 선택지 체계와 해설을 갖추었는가?
5. **난이도**: 대상 학습자 수준에 적절한가?

비평 결과를 상세히 작성해주세요.`

const englishRefinementTemplate = `당신은 {domain_name} 분야의 전문가입니다.

## 현재 프롬프트 지시문:
{instruction}

## 비평 내용:
{critique}

## 출제 핵심 원칙:
{principles}

## 준수해야 할 제약조건:
{constraints}

## 권장 사고방식:
{thinking_styles}

## 개선 요청:
위의 비평과 출제 도메인 지식을 바탕으로 프롬프트를 개선해주세요.

개선 시 반드시 다음 사항을 포함하세요:
1. 측정 목표를 명확히 하는 지시문
2. ①~⑤ 선택지 체계와 정답/해설 형식 강제
3. 정답 유일성 검증 유도
4. 매력적 오답 구성 유도
5. 난이도와 교육과정 연계 고려

개선된 프롬프트를 <IMPROVED_PROMPT></IMPROVED_PROMPT> 태그 안에 작성해주세요.`
