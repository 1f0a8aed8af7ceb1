package domains

import "github.com/promptforge/tacit/internal/knowledge"

// Legal returns the legal consultation domain configuration. Responses stay
// at the level of general legal information and always point to a qualified
// attorney for case-specific advice.
func Legal() knowledge.DomainConfig {
	k := knowledge.DomainKnowledge{
		Principles: []string{
			"법률 자문이 아닌 일반적 법률 정보 제공임을 명시한다",
			"관련 법령과 조문을 정확히 인용한다",
			"판례가 있는 경우 판례의 취지를 반영한다",
			"사안에 따라 결론이 달라질 수 있음을 안내한다",
			"법률 개정 가능성을 고려하여 최신성 한계를 언급한다",
			"변호사 등 전문가 상담 필요성을 안내한다",
			"양 당사자의 입장을 균형 있게 고려한다",
			"소멸시효 등 기한 관련 사항을 놓치지 않는다",
		},
		Constraints: []string{
			"구체적 사건에 대한 법률 자문 금지 - 일반적 정보 제공만",
			"승소 가능성이나 결과를 단정하는 표현 금지",
			"존재하지 않는 법령이나 판례 인용 금지",
			"소송 제기 여부를 직접 결정해주는 표현 금지",
			"변호사법 위반 소지가 있는 표현 금지",
			"일방 당사자에게 유리한 편향된 조언 금지",
		},
		QualityCriteria: []knowledge.QualityCriterion{
			{
				Name:             "법적 정확성",
				Weight:           0.35,
				Description:      "관련 법령과 법리의 정확한 인용 및 설명",
				EvaluationPrompt: "이 응답의 법률 정보가 정확한가?",
			},
			{
				Name:             "한계 명시",
				Weight:           0.25,
				Description:      "일반 정보 제공의 한계와 전문가 상담 필요성 안내",
				EvaluationPrompt: "이 응답이 법률 자문의 한계를 명시하는가?",
			},
			{
				Name:             "실용성",
				Weight:           0.20,
				Description:      "질문자가 실제로 활용할 수 있는 절차적 안내",
				EvaluationPrompt: "이 응답이 실용적인 안내를 제공하는가?",
			},
			{
				Name:             "명확성",
				Weight:           0.15,
				Description:      "법률 용어를 일반인이 이해할 수 있게 설명",
				EvaluationPrompt: "이 응답이 이해하기 쉬운가?",
			},
			{
				Name:             "중립성",
				Weight:           0.05,
				Description:      "양 당사자 입장을 균형 있게 고려",
				EvaluationPrompt: "이 응답이 중립적인가?",
			},
		},
		ThinkingStyles: []string{
			"쟁점 정리 → 관련 법령 확인 → 법리 적용 → 결론 및 한계 순서로 접근",
			"법률 요건을 하나씩 분해하여 사실관계에 대입",
			"원칙과 예외를 구분하여 설명",
			"절차적 측면(기한, 관할, 필요 서류)을 함께 안내",
			"분쟁 예방적 관점에서 대안 제시",
		},
		ExpertPersonas: []knowledge.ExpertPersona{
			{
				Role:             "민사법 전문 변호사",
				Focus:            "계약, 손해배상, 채권채무 관계",
				Background:       "민사 소송 다수 수행 경험",
				ThinkingApproach: "요건사실론에 기반한 체계적 분석",
			},
			{
				Role:             "노동법 전문 변호사",
				Focus:            "근로계약, 해고, 임금 분쟁",
				Background:       "노동위원회 및 노동 소송 전문",
				ThinkingApproach: "근로기준법 중심의 근로자 보호 법리 검토",
			},
			{
				Role:             "형사법 전문 변호사",
				Focus:            "형사 절차 및 방어권 보장",
				Background:       "형사 변호 전문",
				ThinkingApproach: "구성요건 해당성, 위법성, 책임 순서의 검토",
			},
			{
				Role:             "법무사",
				Focus:            "등기, 공탁, 소액 사건 서류 작성",
				Background:       "법원 제출 서류 실무 전문",
				ThinkingApproach: "절차와 서류 요건 중심의 실무적 접근",
			},
		},
		Terminology: map[string]string{
			"소멸시효": "일정 기간 권리를 행사하지 않으면 권리가 소멸하는 제도",
			"요건사실": "법률 효과 발생에 필요한 구체적 사실",
			"기판력":  "확정 판결의 내용에 당사자와 법원이 구속되는 효력",
			"내용증명": "우편으로 의사 표시 내용과 발송 사실을 증명하는 제도",
			"가압류":  "판결 전 채무자 재산을 임시로 묶어두는 보전 처분",
		},
		Patterns: []string{
			"관련 법령 명시 → 일반 법리 설명 → 사안 적용 시 고려사항 → 전문가 상담 안내",
			"기한이 있는 권리는 소멸시효/제척기간을 반드시 언급",
			"'일반적으로', '사안에 따라' 등 한정 표현 사용",
		},
		AntiPatterns: []string{
			"'반드시 승소합니다' 류의 결과 단정",
			"법령 근거 없는 단정적 해석",
			"소송을 무조건 권유하는 표현",
			"상대방을 비난하거나 감정적 대응을 부추기는 표현",
		},
	}

	caseLibrary := knowledge.CaseLibrary{
		CriticalCases: []knowledge.CaseExample{
			{
				Question:          "회사에서 갑자기 해고 통보를 받았는데 어떻게 해야 하나요?",
				ExpectedElements:  []string{"부당해고", "노동위원회", "구제신청", "3개월", "해고 사유"},
				ForbiddenElements: []string{"무조건 승소", "포기하세요"},
				Category:          "노동법",
				Difficulty:        "critical",
				Explanation:       "부당해고 구제신청은 3개월 기한이 있어 신속 안내 필요",
			},
			{
				Question:          "교통사고 합의금을 제시받았는데 바로 합의해도 되나요?",
				ExpectedElements:  []string{"후유증", "진단", "합의 후 번복 어려움", "전문가 상담"},
				ForbiddenElements: []string{"바로 합의하세요"},
				Category:          "손해배상",
				Difficulty:        "critical",
				Explanation:       "합의의 효력과 후유 손해 문제를 안내해야 함",
			},
		},
		EdgeCases: []knowledge.CaseExample{
			{
				Question:          "빌려준 돈을 10년 넘게 못 받고 있는데 받을 수 있나요?",
				ExpectedElements:  []string{"소멸시효", "10년", "시효 중단", "전문가 상담"},
				ForbiddenElements: []string{"무조건 받을 수 있습니다"},
				Category:          "채권",
				Difficulty:        "medium",
				Explanation:       "일반 채권의 소멸시효와 중단 사유 안내",
			},
			{
				Question:          "전세 계약 만료인데 집주인이 보증금을 안 돌려줘요",
				ExpectedElements:  []string{"임차권등기명령", "내용증명", "보증금 반환 소송", "대항력"},
				ForbiddenElements: []string{"그냥 이사 가세요"},
				Category:          "임대차",
				Difficulty:        "medium",
				Explanation:       "보증금 보호 절차를 순서대로 안내해야 함",
			},
		},
		CommonCases: []knowledge.CaseExample{
			{
				Question:         "내용증명은 어떻게 보내나요?",
				ExpectedElements: []string{"우체국", "3부", "법적 효력", "증거"},
				Category:         "절차",
				Difficulty:       "easy",
				Explanation:      "내용증명 발송의 기본 절차",
			},
		},
	}

	return knowledge.DomainConfig{
		DomainType:         "legal",
		DomainName:         "법률 상담",
		Description:        "법률 관련 질의응답을 위한 도메인 설정. 일반적 법률 정보 제공에 한정하며, 구체적 사안은 전문가 상담을 안내합니다.",
		Knowledge:          k,
		CritiqueTemplate:   legalCritiqueTemplate,
		RefinementTemplate: legalRefinementTemplate,
		CaseLibrary:        caseLibrary,
		Metadata: map[string]any{
			"version":      "1.0.0",
			"last_updated": "2024-01-01",
			"references": []any{
				"민법",
				"근로기준법",
				"변호사법",
			},
		},
		Validators: []map[string]any{
			{
				"type":            "KeywordValidator",
				"keywords":        []any{"변호사", "전문가", "상담"},
				"must_include":    true,
				"name":            "Legal Referral Check",
				"description":     "Must recommend consulting a legal professional",
				"failure_message": "응답에 변호사 등 전문가 상담 안내가 포함되어야 합니다.",
			},
			{
				"type":            "KeywordValidator",
				"keywords":        []any{"반드시 승소", "100% 승소"},
				"must_include":    false,
				"name":            "Outcome Guarantee Check",
				"description":     "Must not guarantee litigation outcomes",
				"failure_message": "소송 결과를 단정하는 표현이 포함되었습니다.",
			},
		},
	}
}

const legalCritiqueTemplate = `당신은 법률 분야 전문가입니다. 다음 프롬프트와 응답을 법률 전문가 관점에서 비평해주세요.

## 현재 프롬프트 지시문:
{instruction}

## 생성된 예제 응답:
{examples}

## 법률 도메인 핵심 원칙:
{principles}

## 준수해야 할 제약조건:
{constraints}

## 품질 평가 기준:
{quality_criteria}

## 비평 관점:
1. **법적 정확성**: 인용된 법령과 법리가 정확한가?
2. **한계 명시**: 일반 정보 제공의 한계와 전문가 상담 필요성이 안내되는가?
3. **중립성**: 일방에게 편향되지 않았는가?
4. **실용성**: 절차, 기한, 필요 서류 등 실무적 안내가 있는가?
5. **명확성**: 법률 용어가 이해하기 쉽게 설명되는가?

비평 결과를 상세히 작성해주세요.`

const legalRefinementTemplate = `당신은 {domain_name} 분야의 전문가입니다.

## 현재 프롬프트 지시문:
{instruction}

## 비평 내용:
{critique}

## 법률 도메인 핵심 원칙:
{principles}

## 준수해야 할 제약조건:
{constraints}

## 권장 사고방식:
{thinking_styles}

## 개선 요청:
위의 비평과 법률 도메인 지식을 바탕으로 프롬프트를 개선해주세요.

개선 시 반드시 다음 사항을 포함하세요:
1. 법률 자문이 아닌 일반 정보 제공임을 명시
2. 관련 법령 인용과 쟁점 중심의 구조화된 접근
3. 소멸시효 등 기한 관련 사항 확인 유도
4. 결과를 단정하지 않는 균형 잡힌 표현
5. 전문가 상담 안내

개선된 프롬프트를 <IMPROVED_PROMPT></IMPROVED_PROMPT> 태그 안에 작성해주세요.`
