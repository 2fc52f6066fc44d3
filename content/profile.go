package content

// CareerItem is one entry of the career timeline.
type CareerItem struct {
	Period      string
	Role        string
	Description string
	Icon        string
}

// Certification is a held certificate shown in the skills grid.
type Certification struct {
	Name        string
	Kind        string // finance, tech or admin
	Description string
}

// Interest is a tech topic or hobby shown in the skills grid.
type Interest struct {
	Name        string
	Category    string // "Tech" or "Hobby"
	Description string
	Icon        string
}

// ContactInfo is one contact card.
type ContactInfo struct {
	Kind  string
	Label string
	Value string
	Note  string
	Link  string
}

// ProfileData groups the read-only sections of the page. They are not part
// of SiteContent and are never persisted.
type ProfileData struct {
	Career         []CareerItem
	Certifications []Certification
	Interests      []Interest
	Contacts       []ContactInfo
	Copyright      string
	Location       string
}

// Profile returns the static profile sections.
func Profile() ProfileData {
	return ProfileData{
		Career: []CareerItem{
			{
				Period:      "2021 ~ 현재",
				Role:        "전업 투자자 (Full-time Investor)",
				Description: "글로벌 경제 동향 분석 및 가치 투자, 부동산, 주식, 금융 투자.",
				Icon:        "landmark",
			},
			{
				Period:      "1989 ~ 2021",
				Role:        "공무원 (Civil Servant)",
				Description: "32년 근속, 행정 실무 및 정책 수행, 지역 사회 발전에 노력.",
				Icon:        "briefcase",
			},
		},
		Certifications: []Certification{
			{Name: "공인중개사", Kind: "finance", Description: "부동산 관련 법률 지식과 자산 분석 능력을 바탕으로 안전하고 전문적인 중개 및 컨설팅을 수행합니다."},
			{Name: "정보처리산업기사", Kind: "tech", Description: "효율적인 정보 시스템 운용과 데이터 처리를 위한 기술적 역량을 보유하고 있습니다."},
			{Name: "행정사", Kind: "admin", Description: "행정 기관을 대상으로 하는 서류 작성 및 인허가 대리 등 전문적인 행정 법률 서비스를 제공합니다."},
		},
		Interests: []Interest{
			{Name: "AI Research", Category: "Tech", Description: "최신 AI 트렌드 및 LLM 활용", Icon: "cpu"},
			{Name: "업무 자동화", Category: "Tech", Description: "생산성 향상을 위한 프로세스 최적화", Icon: "workflow"},
			{Name: "컨텐츠 제작", Category: "Tech", Description: "디지털 미디어 & 스토리텔링", Icon: "video"},
			{Name: "테니스", Category: "Hobby", Description: "즐거운 테니스를 통한 건강한 신체 단련", Icon: "trophy"},
			{Name: "바이크 여행", Category: "Hobby", Description: "자유로운 바람과 새로운 풍경 여행", Icon: "bike"},
		},
		Contacts: []ContactInfo{
			{Kind: "phone", Label: "연락처", Value: "010-6690-1019", Note: "평일 09:00 - 18:00", Link: "tel:010-6690-1019"},
			{Kind: "email", Label: "이메일", Value: "kjjr7329@gmail.com", Note: "언제든지 메일을 보내주세요.", Link: "mailto:kjjr7329@gmail.com"},
		},
		Copyright: "© 2024 Kim Jong-jin. All rights reserved.",
		Location:  "대한민국",
	}
}

// InterestsIn returns the interests of the given category, in order.
func (p ProfileData) InterestsIn(category string) []Interest {
	var out []Interest
	for _, in := range p.Interests {
		if in.Category == category {
			out = append(out, in)
		}
	}
	return out
}
