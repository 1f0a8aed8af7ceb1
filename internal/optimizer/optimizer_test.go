package optimizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/tacit/internal/evaluate"
	"github.com/promptforge/tacit/internal/knowledge"
	"github.com/promptforge/tacit/internal/registry"
)

func testConfig() knowledge.DomainConfig {
	return knowledge.DomainConfig{
		DomainType: "medical",
		DomainName: "의료",
		Knowledge: knowledge.DomainKnowledge{
			Principles: []string{
				"환자 안전이 최우선이다",
				"근거 기반 의학을 따른다",
				"불확실성을 인정한다",
				"네 번째 원칙은 잘려야 한다",
			},
			Constraints: []string{
				"확정 진단 표현 금지",
				"검증되지 않은 민간요법 권고 금지",
			},
			ExpertPersonas: []knowledge.ExpertPersona{
				{
					Role:             "내과 전문의",
					Focus:            "만성 질환 관리",
					Background:       "내과 전문의 자격",
					ThinkingApproach: "체계적 병력 청취",
				},
			},
		},
		CaseLibrary: knowledge.CaseLibrary{
			CriticalCases: []knowledge.CaseExample{
				{
					Question:          "가슴이 아프고 왼쪽 팔이 저립니다",
					ExpectedElements:  []string{"응급실", "119"},
					ForbiddenElements: []string{"걱정하지 마세요"},
					Category:          "응급 상황",
					Difficulty:        "critical",
				},
			},
		},
		Validators: []map[string]any{
			{
				"type":            "KeywordValidator",
				"keywords":        []any{"상담"},
				"must_include":    true,
				"failure_message": "상담 권고가 필요합니다",
			},
		},
	}
}

func TestOptimizer_EnhanceInstruction(t *testing.T) {
	o := New(testConfig(), nil, nil, nil)

	got := o.EnhanceInstruction("질문에 답하세요.")

	assert.True(t, strings.HasPrefix(got, "당신은 의료 분야의 전문가입니다."))
	assert.Contains(t, got, "핵심 원칙:\n- 환자 안전이 최우선이다")
	assert.Contains(t, got, "준수사항:\n- 확정 진단 표현 금지")
	assert.True(t, strings.HasSuffix(got, "질문에 답하세요."))

	// Only the top three principles survive.
	assert.NotContains(t, got, "네 번째 원칙은 잘려야 한다")
}

func TestOptimizer_EnhanceInstruction_EmptyKnowledge(t *testing.T) {
	o := New(knowledge.DomainConfig{DomainType: "general", DomainName: "일반"}, nil, nil, nil)

	got := o.EnhanceInstruction("질문에 답하세요.")
	assert.Equal(t, "당신은 일반 분야의 전문가입니다.\n\n질문에 답하세요.", got)
}

func TestOptimizer_ExpertPrompt(t *testing.T) {
	o := New(testConfig(), nil, nil, nil)
	got := o.ExpertPrompt()
	assert.Contains(t, got, "당신은 내과 전문의입니다.")
	assert.Contains(t, got, "전문 분야: 만성 질환 관리")
	assert.Contains(t, got, "접근 방식: 체계적 병력 청취")

	noPersona := New(knowledge.DomainConfig{DomainType: "x", DomainName: "일반"}, nil, nil, nil)
	assert.Equal(t, "당신은 일반 분야의 전문가입니다.", noPersona.ExpertPrompt())
}

func TestOptimizer_EvaluateResponse_DelegatesToEvaluator(t *testing.T) {
	cfg := testConfig()
	o := New(cfg, evaluate.NewEngine(cfg, nil), nil, nil)

	scores := o.EvaluateResponse("응답", "", "")
	assert.Contains(t, scores, evaluate.MetricPrincipleAlignment)
}

func TestOptimizer_FallbackEvaluate(t *testing.T) {
	o := New(testConfig(), nil, nil, nil)

	tests := []struct {
		name        string
		response    string
		groundTruth string
		wantAcc     float64
		hasAcc      bool
		wantCC      float64
	}{
		{
			name:        "full overlap and clean response",
			response:    "즉시 응급실로 가세요",
			groundTruth: "즉시 응급실로 가세요",
			wantAcc:     1.0,
			hasAcc:      true,
			wantCC:      1.0,
		},
		{
			name:     "no ground truth omits accuracy",
			response: "응답입니다",
			wantCC:   1.0,
		},
		{
			name:        "prohibition term hit lowers compliance",
			response:    "민간요법을 시도해 보세요",
			groundTruth: "의사와 상담하세요",
			wantAcc:     0.0,
			hasAcc:      true,
			wantCC:      0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := o.EvaluateResponse(tt.response, tt.groundTruth, "")

			acc, ok := scores[evaluate.MetricAccuracy]
			require.Equal(t, tt.hasAcc, ok)
			if tt.hasAcc {
				assert.InDelta(t, tt.wantAcc, acc, 1e-9)
			}
			assert.InDelta(t, tt.wantCC, scores[evaluate.MetricConstraintCompliance], 1e-9)
			assert.Contains(t, scores, evaluate.MetricOverall)
		})
	}
}

func TestOptimizer_CriticalTestCases(t *testing.T) {
	o := New(testConfig(), nil, nil, nil)

	cases := o.CriticalTestCases()
	require.Len(t, cases, 1)
	assert.Equal(t, "가슴이 아프고 왼쪽 팔이 저립니다", cases[0].Question)
	assert.Equal(t, "응급 상황", cases[0].Category)
	assert.Equal(t, "critical", cases[0].Difficulty)
}

func TestOptimizer_ValidateAgainstCases(t *testing.T) {
	o := New(testConfig(), nil, nil, nil)

	report := o.ValidateAgainstCases("프롬프트", func(prompt, question string) (string, error) {
		// Names one of two expected elements plus a forbidden one:
		// 0.5 recall minus the 0.25 penalty.
		return "응급실로 가세요. 너무 걱정하지 마세요.", nil
	})

	require.NotEmpty(t, report.RunID)
	require.Len(t, report.Results, 1)
	assert.InDelta(t, 0.25, report.Results[0].Score, 1e-9)
	assert.InDelta(t, 0.25, report.Score, 1e-9)
}

func TestOptimizer_ValidateAgainstCases_EmptyLibrary(t *testing.T) {
	cfg := testConfig()
	cfg.CaseLibrary = knowledge.CaseLibrary{}
	o := New(cfg, nil, nil, nil)

	report := o.ValidateAgainstCases("프롬프트", func(prompt, question string) (string, error) {
		t.Fatal("callback must not run for an empty library")
		return "", nil
	})

	assert.Equal(t, 1.0, report.Score)
	assert.Empty(t, report.Results)
}

func TestOptimizer_ValidateAgainstCases_CallbackFailure(t *testing.T) {
	o := New(testConfig(), nil, nil, nil)

	report := o.ValidateAgainstCases("프롬프트", func(prompt, question string) (string, error) {
		return "", errors.New("completion backend down")
	})

	require.Len(t, report.Results, 1)
	assert.Equal(t, 0.0, report.Results[0].Score)
	assert.Equal(t, 0.0, report.Score)
	assert.Empty(t, report.Results[0].Response)
}

func TestOptimizer_ValidateAgainstCases_TruncatesResponses(t *testing.T) {
	o := New(testConfig(), nil, nil, nil)

	long := strings.Repeat("가", 300)
	report := o.ValidateAgainstCases("프롬프트", func(prompt, question string) (string, error) {
		return long, nil
	})

	require.Len(t, report.Results, 1)
	got := report.Results[0].Response
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, responseExcerptLen, len([]rune(strings.TrimSuffix(got, "..."))))
}

func TestScoreCaseResponse(t *testing.T) {
	c := knowledge.CaseExample{
		Question:          "q",
		ExpectedElements:  []string{"응급실", "119"},
		ForbiddenElements: []string{"걱정하지 마세요", "쉬면 나아질"},
	}

	tests := []struct {
		name     string
		response string
		want     float64
	}{
		{
			name:     "empty response",
			response: "",
			want:     0.0,
		},
		{
			name:     "all expected none forbidden",
			response: "즉시 응급실로 가시고 119에 신고하세요",
			want:     1.0,
		},
		{
			name:     "each forbidden hit costs a quarter",
			response: "응급실과 119를 안내하지만, 걱정하지 마세요. 쉬면 나아질 겁니다.",
			want:     0.5,
		},
		{
			name:     "floor at zero",
			response: "걱정하지 마세요. 쉬면 나아질 거예요.",
			want:     0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scoreCaseResponse(tt.response, c), 1e-9)
		})
	}
}

func TestOptimizer_CheckValidators(t *testing.T) {
	o := New(testConfig(), nil, nil, nil)

	assert.Empty(t, o.CheckValidators("전문가 상담을 권합니다"))

	failures := o.CheckValidators("그냥 드세요")
	require.Len(t, failures, 1)
	assert.Equal(t, "상담 권고가 필요합니다", failures[0])
}

func TestForDomain(t *testing.T) {
	reg := registry.New(nil)
	reg.Register(knowledge.DomainConfig{DomainType: "custom", DomainName: "커스텀"},
		func(cfg knowledge.DomainConfig) evaluate.Evaluator {
			return evaluate.NewEngine(cfg, nil)
		})

	o, err := ForDomain("custom", reg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "커스텀", o.Config().DomainName)

	_, err = ForDomain("no-such-domain", reg, nil, nil)
	require.ErrorIs(t, err, ErrUnknownDomain)
}

func TestForDomain_Fallbacks(t *testing.T) {
	Fallbacks.Configs["fallback-domain"] = knowledge.DomainConfig{
		DomainType: "fallback-domain",
		DomainName: "폴백",
	}
	t.Cleanup(func() {
		delete(Fallbacks.Configs, "fallback-domain")
		delete(Fallbacks.Factories, "fallback-domain")
	})

	o, err := ForDomain("fallback-domain", registry.New(nil), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "폴백", o.Config().DomainName)
}

// scriptedClient returns canned completions in order, recording prompts.
type scriptedClient struct {
	responses []string
	errs      []error
	prompts   []string
	calls     int
}

func (c *scriptedClient) Complete(_ context.Context, prompt, _ string) (string, error) {
	i := c.calls
	c.calls++
	c.prompts = append(c.prompts, prompt)
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", nil
}

func TestOptimizer_RefineCycle(t *testing.T) {
	client := &scriptedClient{
		responses: []string{
			"원칙 반영이 부족합니다",
			"검토했습니다.\n<IMPROVED_PROMPT>\n개선된 지시문\n</IMPROVED_PROMPT>",
		},
	}
	o := New(testConfig(), nil, client, nil)

	improved, err := o.RefineCycle(context.Background(), "기존 지시문", "예제", nil)
	require.NoError(t, err)
	assert.Equal(t, "개선된 지시문", improved)

	// First the critique prompt, then a refinement prompt that embeds the
	// critique text verbatim.
	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[0], "기존 지시문")
	assert.Contains(t, client.prompts[1], "원칙 반영이 부족합니다")
}

func TestOptimizer_RefineCycle_Errors(t *testing.T) {
	t.Run("no client", func(t *testing.T) {
		o := New(testConfig(), nil, nil, nil)
		_, err := o.RefineCycle(context.Background(), "지시문", "예제", nil)
		require.ErrorIs(t, err, ErrNoClient)
	})

	t.Run("completion failure", func(t *testing.T) {
		client := &scriptedClient{errs: []error{errors.New("backend down")}}
		o := New(testConfig(), nil, client, nil)
		_, err := o.RefineCycle(context.Background(), "지시문", "예제", nil)
		require.Error(t, err)
	})

	t.Run("missing improved block", func(t *testing.T) {
		client := &scriptedClient{responses: []string{"비평", "태그 없는 출력"}}
		o := New(testConfig(), nil, client, nil)
		_, err := o.RefineCycle(context.Background(), "지시문", "예제", nil)
		require.ErrorIs(t, err, ErrNoImprovedBlock)
	})
}

func TestOptimizer_CaseResponder(t *testing.T) {
	client := &scriptedClient{responses: []string{"즉시 응급실로 가세요"}}
	o := New(testConfig(), nil, client, nil)

	respond := o.CaseResponder(context.Background())
	got, err := respond("검증 중인 프롬프트", "가슴이 아파요")
	require.NoError(t, err)
	assert.Equal(t, "즉시 응급실로 가세요", got)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "검증 중인 프롬프트")
	assert.Contains(t, client.prompts[0], "질문: 가슴이 아파요")
}

func TestExtractImproved(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{
			name:   "delimited block",
			output: "서론입니다.\n<IMPROVED_PROMPT>\n개선된 지시문\n</IMPROVED_PROMPT>\n결론입니다.",
			want:   "개선된 지시문",
		},
		{
			name:   "multiline block is kept intact",
			output: "<IMPROVED_PROMPT>첫 줄\n둘째 줄</IMPROVED_PROMPT>",
			want:   "첫 줄\n둘째 줄",
		},
		{
			name:    "missing delimiters",
			output:  "개선된 지시문이지만 태그가 없습니다",
			wantErr: true,
		},
		{
			name:    "only opening delimiter",
			output:  "<IMPROVED_PROMPT>잘린 출력",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractImproved(tt.output)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoImprovedBlock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
