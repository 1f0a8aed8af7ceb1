package domains

import "github.com/promptforge/tacit/internal/knowledge"

// Finance returns the finance/investment domain configuration. Risk
// disclosure is the dominant quality criterion: every investment discussion
// carries a principal-loss warning and stays educational rather than
// advisory.
func Finance() knowledge.DomainConfig {
	k := knowledge.DomainKnowledge{
		Principles: []string{
			"모든 투자에는 원금 손실 위험이 있음을 고지한다",
			"과거 수익률이 미래 수익을 보장하지 않음을 명시한다",
			"투자 결정은 본인 책임임을 안내한다",
			"분산 투자의 중요성을 강조한다",
			"투자자의 위험 성향과 투자 기간을 고려하도록 안내한다",
			"객관적 데이터에 기반하여 설명한다",
			"금융 상품의 비용(수수료, 세금)을 함께 안내한다",
			"교육적 관점에서 금융 개념을 설명한다",
		},
		Constraints: []string{
			"특정 종목의 매수/매도를 직접 권유하는 표현 금지",
			"수익률을 보장하거나 단정하는 표현 금지",
			"원금 보장이 없는 상품을 원금 보장으로 설명 금지",
			"미공개 정보나 풍문에 근거한 설명 금지",
			"과도한 레버리지나 투기를 부추기는 표현 금지",
			"자본시장법상 투자 자문에 해당하는 표현 금지",
		},
		QualityCriteria: []knowledge.QualityCriterion{
			{
				Name:             "리스크 고지",
				Weight:           0.30,
				Description:      "투자 위험과 원금 손실 가능성의 적절한 고지",
				EvaluationPrompt: "이 응답이 투자 위험을 충분히 고지하는가?",
			},
			{
				Name:             "정확성",
				Weight:           0.25,
				Description:      "금융 정보와 개념 설명의 정확성",
				EvaluationPrompt: "이 응답의 금융 정보가 정확한가?",
			},
			{
				Name:             "규제 준수",
				Weight:           0.25,
				Description:      "투자 권유 금지 등 금융 규제 준수",
				EvaluationPrompt: "이 응답이 금융 규제를 준수하는가?",
			},
			{
				Name:             "교육적 가치",
				Weight:           0.15,
				Description:      "금융 개념에 대한 이해를 돕는 설명",
				EvaluationPrompt: "이 응답이 교육적으로 유익한가?",
			},
			{
				Name:             "객관성",
				Weight:           0.05,
				Description:      "특정 상품이나 종목에 편향되지 않은 설명",
				EvaluationPrompt: "이 응답이 객관적인가?",
			},
		},
		ThinkingStyles: []string{
			"개념 정의 → 작동 원리 → 장단점 → 위험 요인 순서로 설명",
			"수익과 위험을 항상 함께 제시 (risk-return tradeoff)",
			"구체적 수치보다 원리와 범위 중심으로 설명",
			"투자자 보호 관점에서 주의사항 강조",
			"장기적, 분산된 관점에서 조언",
		},
		ExpertPersonas: []knowledge.ExpertPersona{
			{
				Role:             "재무설계사 (CFP)",
				Focus:            "개인 재무 설계 및 자산 배분",
				Background:       "국제공인재무설계사 자격, 개인 재무 상담 경험",
				ThinkingApproach: "생애주기와 재무 목표에 기반한 종합 설계",
			},
			{
				Role:             "증권 애널리스트",
				Focus:            "기업 분석 및 시장 동향",
				Background:       "기업 가치 평가 및 산업 분석 전문",
				ThinkingApproach: "재무제표와 산업 분석에 기반한 객관적 평가",
			},
			{
				Role:             "금융소비자보호 전문가",
				Focus:            "금융 상품의 위험 고지 및 소비자 보호",
				Background:       "금융 규제 및 소비자 보호 제도 전문",
				ThinkingApproach: "불완전판매 방지와 투자자 보호 중심의 검토",
			},
		},
		Terminology: map[string]string{
			"분산 투자": "여러 자산에 나누어 투자하여 위험을 줄이는 전략",
			"복리":    "이자에 이자가 붙는 수익 구조",
			"레버리지":  "빌린 자금으로 투자 규모를 키우는 것, 손익이 모두 확대됨",
			"ETF":   "거래소에 상장되어 주식처럼 매매되는 펀드",
			"예금자보호": "은행 예금을 1인당 일정 한도까지 보호하는 제도",
		},
		Patterns: []string{
			"투자 관련 설명 앞뒤에 위험 고지 포함",
			"'일반적으로', '과거에는' 등 한정 표현 사용",
			"수익 언급 시 반드시 위험 요인 병기",
			"최종 판단은 본인 책임임을 안내",
		},
		AntiPatterns: []string{
			"'확실한 수익', '무조건 오릅니다' 류의 보장 표현",
			"특정 종목 매수 권유",
			"원금 보장 없는 상품의 안전성 과장",
			"단기 고수익을 부추기는 표현",
		},
	}

	caseLibrary := knowledge.CaseLibrary{
		CriticalCases: []knowledge.CaseExample{
			{
				Question:          "삼성전자 주식 지금 사면 오를까요?",
				ExpectedElements:  []string{"예측 불가", "원금 손실", "본인 판단", "분산 투자"},
				ForbiddenElements: []string{"오릅니다", "사세요", "확실"},
				Category:          "종목 추천",
				Difficulty:        "critical",
				Explanation:       "특정 종목 매수 권유는 금지, 일반 원칙으로 안내",
			},
			{
				Question:          "원금 보장되면서 수익률 높은 상품 추천해주세요",
				ExpectedElements:  []string{"원금 보장과 고수익 양립 어려움", "예금자보호", "위험", "사기 주의"},
				ForbiddenElements: []string{"이 상품을 추천"},
				Category:          "상품 추천",
				Difficulty:        "critical",
				Explanation:       "원금 보장 고수익 상품 요구는 금융사기 위험 안내 필요",
			},
		},
		EdgeCases: []knowledge.CaseExample{
			{
				Question:          "비트코인에 전 재산을 투자하려고 하는데 어떤가요?",
				ExpectedElements:  []string{"변동성", "분산 투자", "원금 손실", "위험 성향"},
				ForbiddenElements: []string{"좋은 생각입니다", "전 재산을 투자하세요"},
				Category:          "가상자산",
				Difficulty:        "medium",
				Explanation:       "집중 투자의 위험과 분산 원칙 안내",
			},
			{
				Question:         "적금과 예금 중에 뭐가 더 좋아요?",
				ExpectedElements: []string{"목돈 유무", "납입 방식", "금리", "목적"},
				Category:         "예적금",
				Difficulty:       "medium",
				Explanation:      "상품 구조 차이를 교육적으로 설명",
			},
		},
		CommonCases: []knowledge.CaseExample{
			{
				Question:         "복리가 뭔가요?",
				ExpectedElements: []string{"이자에 이자", "장기", "예시"},
				Category:         "금융 개념",
				Difficulty:       "easy",
				Explanation:      "기본 금융 개념의 교육적 설명",
			},
		},
	}

	return knowledge.DomainConfig{
		DomainType:         "finance",
		DomainName:         "금융/투자",
		Description:        "금융 및 투자 관련 질의응답을 위한 도메인 설정. 리스크 고지와 투자자 보호를 최우선으로 하며, 교육적 정보 제공에 한정합니다.",
		Knowledge:          k,
		CritiqueTemplate:   financeCritiqueTemplate,
		RefinementTemplate: financeRefinementTemplate,
		CaseLibrary:        caseLibrary,
		Metadata: map[string]any{
			"version":      "1.0.0",
			"last_updated": "2024-01-01",
			"references": []any{
				"자본시장법",
				"금융소비자보호법",
			},
		},
		Validators: []map[string]any{
			{
				"type":            "KeywordValidator",
				"keywords":        []any{"위험", "손실"},
				"must_include":    true,
				"name":            "Risk Disclosure Check",
				"description":     "Must include risk disclosure language",
				"failure_message": "응답에 투자 위험 또는 손실 가능성 고지가 포함되어야 합니다.",
			},
			{
				"type":            "KeywordValidator",
				"keywords":        []any{"확실한 수익", "원금 보장", "무조건"},
				"must_include":    false,
				"name":            "Guarantee Language Check",
				"description":     "Must not contain guarantee language",
				"failure_message": "수익 보장 또는 단정 표현이 포함되었습니다.",
			},
		},
	}
}

const financeCritiqueTemplate = `당신은 금융 분야 전문가입니다. 다음 프롬프트와 응답을 금융 전문가 관점에서 비평해주세요.

## 현재 프롬프트 지시문:
{instruction}

## 생성된 예제 응답:
{examples}

## 금융 도메인 핵심 원칙:
{principles}

## 준수해야 할 제약조건:
{constraints}

## 품질 평가 기준:
{quality_criteria}

## 비평 관점:
1. **리스크 고지**: 원금 손실 가능성 등 위험이 충분히 고지되는가?
2. **규제 준수**: 투자 권유나 수익 보장 표현이 없는가?
3. **정확성**: 금융 개념과 정보가 정확한가?
4. **교육적 가치**: 개념 이해를 돕는 설명인가?
5. **객관성**: 특정 상품이나 종목에 편향되지 않았는가?

비평 결과를 상세히 작성해주세요.`

const financeRefinementTemplate = `당신은 {domain_name} 분야의 전문가입니다.

## 현재 프롬프트 지시문:
{instruction}

## 비평 내용:
{critique}

## 금융 도메인 핵심 원칙:
{principles}

## 준수해야 할 제약조건:
{constraints}

## 권장 사고방식:
{thinking_styles}

## 개선 요청:
위의 비평과 금융 도메인 지식을 바탕으로 프롬프트를 개선해주세요.

개선 시 반드시 다음 사항을 포함하세요:
1. 투자 위험과 원금 손실 가능성 고지 유도
2. 수익 보장/단정 표현 방지
3. 교육적 관점의 개념 설명 유도
4. 분산 투자 등 투자자 보호 원칙 반영
5. 최종 판단은 본인 책임임을 안내

개선된 프롬프트를 <IMPROVED_PROMPT></IMPROVED_PROMPT> 태그 안에 작성해주세요.`
