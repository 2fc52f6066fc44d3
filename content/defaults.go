package content

// DefaultProfileImage is served when About.ProfileImage is empty.
const DefaultProfileImage = "/public/profile.svg"

// Placeholder values used for items created by AddItem.
const (
	PlaceholderTitle       = "새로운 소식"
	PlaceholderDescription = "새로운 내용을 입력하세요."
	PlaceholderImage       = "https://images.unsplash.com/photo-1518770660439-4636190af475?auto=format&fit=crop&q=80&w=800"
)

// Default returns a fresh copy of the built-in content.
func Default() SiteContent {
	return SiteContent{
		Hero: Hero{
			Badge:       "2025 포트폴리오",
			Title:       "안녕하세요,\n김종진입니다.",
			Description: "32년의 공직 생활을 넘어, 이제는 데이터와 통찰로 새로운 가치를 만들어 가는 전업 투자자이자 크리에이터입니다.",
		},
		About: About{
			MainTitle: "나에 대하여",
			SubTitle:  "변화를 두려워하지 않는\n끊임없는 도전자",
			Desc1:     "1989년 공직에 입문하여 2021년 직장생활을 마무리 하고, 이제는 4차 산업혁명 시대의 흐름을 읽는 전업 투자자로서 제2의 인생을 살고 있습니다.",
			Desc2:     "사회생활의 효율성을 높이고자 AI와 업무 자동화 기술을 탐구하고 있으며, 테니스와 바이크 여행을 통해 삶의 활력을 얻습니다. 어제보다 더 나은 내일을 위해 끊임없이 배우고 성장하고자 합니다.",
		},
		Updates: DefaultUpdates(),
	}
}

// DefaultUpdates returns a fresh copy of the built-in updates list.
func DefaultUpdates() []UpdateItem {
	return []UpdateItem{
		{
			ID:          1,
			Title:       "AI & 미래 투자 컨퍼런스 참석",
			Date:        "2024.03.15",
			Description: "서울 코엑스에서 열린 AI 기술 동향과 핀테크 투자 전략 컨퍼런스에 참석하여 최신 인사이트를 공유했습니다.",
			Image:       "https://images.unsplash.com/photo-1591453089816-0fbb971b454c?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:          2,
			Title:       "동해안 바이크 투어",
			Date:        "2024.02.20",
			Description: "강원도 해안도로를 따라 300km를 달리며 재충전의 시간을 가졌습니다. 바람과 함께한 자유로운 여정이었습니다.",
			Image:       "https://images.unsplash.com/photo-1558981403-c5f9899a28bc?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:          3,
			Title:       "부동산 시장 분석 보고서 발행",
			Date:        "2024.01.10",
			Description: "금리 변동에 따른 수도권 부동산 시장의 흐름과 2024년 전망을 담은 자체 분석 리포트를 작성했습니다.",
			Image:       "https://images.unsplash.com/photo-1560518883-ce09059eeffa?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:          4,
			Title:       "테니스 동호회 우승",
			Date:        "2023.12.05",
			Description: "지역 테니스 클럽 연말 대회에서 복식 우승을 차지했습니다. 꾸준한 연습과 팀워크가 만들어낸 결과입니다.",
			Image:       "https://images.unsplash.com/photo-1595435934249-5df7ed86e1c0?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:          5,
			Title:       "데이터 분석 자격 과정 수료",
			Date:        "2023.11.15",
			Description: "빅데이터 분석 준전문가(ADsP) 과정을 수료하며 데이터 기반 의사결정 역량을 한층 더 강화했습니다.",
			Image:       "https://images.unsplash.com/photo-1551288049-bebda4e38f71?auto=format&fit=crop&q=80&w=800",
		},
	}
}
