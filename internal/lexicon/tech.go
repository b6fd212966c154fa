package lexicon

import "NewsHarvester/internal/domain"

// Tech returns the built-in technology news lexicon.
func Tech() Lexicon {
	return Lexicon{
		Mode:     domain.ModeTech,
		Fallback: domain.FallbackCategory,
		Categories: []Category{
			{Name: "AI", Keywords: []string{
				"AI", "人工智能", "大模型", "LLM", "GPT", "OpenAI", "Claude", "Anthropic", "Gemini",
				"DeepSeek", "机器学习", "深度学习", "神经网络", "智能体", "Agent", "多模态", "AIGC", "生成式",
			}},
			{Name: "芯片", Keywords: []string{
				"芯片", "半导体", "GPU", "CPU", "英伟达", "NVIDIA", "AMD", "英特尔", "Intel", "台积电",
				"TSMC", "光刻", "算力", "晶圆", "高通",
			}},
			{Name: "互联网", Keywords: []string{
				"互联网", "腾讯", "阿里", "字节", "百度", "美团", "京东", "拼多多", "电商", "社交",
				"短视频", "抖音",
			}},
			{Name: "创业投资", Keywords: []string{
				"融资", "投资", "创业", "估值", "IPO", "上市", "收购", "并购", "独角兽", "天使轮", "A轮", "B轮",
			}},
			{Name: "开源", Keywords: []string{"开源", "GitHub", "open source", "Linux", "Apache"}},
			{Name: "数码硬件", Keywords: []string{
				"手机", "iPhone", "华为", "小米", "苹果", "笔记本", "平板", "耳机", "可穿戴", "屏幕", "相机", "续航",
			}},
			{Name: "开发技术", Keywords: []string{
				"编程", "开发者", "架构", "云原生", "Kubernetes", "数据库", "框架", "Rust", "Python",
				"Go语言", "微服务", "DevOps",
			}},
			{Name: "科学研究", Keywords: []string{"研究", "论文", "科学家", "实验", "量子", "航天", "学术", "Nature", "arXiv"}},
			{Name: "网络安全", Keywords: []string{"网络安全", "漏洞", "黑客", "攻击", "勒索", "隐私", "数据泄露"}},
		},
		Hints: map[string]string{
			"AI":  "AI",
			"数码":  "数码硬件",
			"硬件":  "数码硬件",
			"创业":  "创业投资",
			"投资":  "创业投资",
			"技术":  "开发技术",
			"架构":  "开发技术",
			"开发":  "开发技术",
			"IT":  "开发技术",
			"开源":  "开源",
			"研究":  "科学研究",
			"互联网": "互联网",
			"商业":  "互联网",
		},
		Entities: []EntityGroup{
			{Name: "AI公司", Category: "AI", Weight: 1, Members: []string{"OpenAI", "Anthropic", "DeepSeek", "智谱", "月之暗面", "Mistral"}},
			{Name: "芯片厂商", Category: "芯片", Weight: 1, Members: []string{"英伟达", "NVIDIA", "AMD", "英特尔", "Intel", "台积电", "高通"}},
			{Name: "互联网巨头", Category: "互联网", Weight: 1, Members: []string{"腾讯", "阿里", "字节", "百度", "美团", "Google", "谷歌", "Meta", "微软", "Microsoft"}},
			{Name: "终端厂商", Category: "数码硬件", Weight: 1, Members: []string{"苹果", "Apple", "华为", "小米", "三星"}},
		},
		Importance: []Term{
			{Text: "OpenAI", Weight: 5},
			{Text: "Anthropic", Weight: 5},
			{Text: "GPT", Weight: 4},
			{Text: "Claude", Weight: 4},
			{Text: "Gemini", Weight: 4},
			{Text: "DeepSeek", Weight: 4},
			{Text: "突破", Weight: 4},
			{Text: "发布", Weight: 3},
			{Text: "大模型", Weight: 3},
			{Text: "融资", Weight: 3},
			{Text: "收购", Weight: 3},
			{Text: "英伟达", Weight: 3},
			{Text: "NVIDIA", Weight: 3},
			{Text: "首次", Weight: 2},
			{Text: "开源", Weight: 2},
			{Text: "芯片", Weight: 2},
			{Text: "漏洞", Weight: 2},
			{Text: "Google", Weight: 2},
			{Text: "谷歌", Weight: 2},
			{Text: "Meta", Weight: 2},
		},
		Reputation: map[string]int{
			"机器之心":                  3,
			"量子位":                   3,
			"MIT Technology Review": 3,
			"TechCrunch":            3,
			"Synced":                3,
			"InfoQ":                 2,
			"36氪":                   2,
			"IT之家":                  2,
			"雷锋网":                   2,
			"智源社区":                  2,
			"TheVerge":              2,
			"Ars Technica":          2,
			"Wired":                 2,
			"Hacker News":           2,
			"BBC Technology":        2,
			"Reuters Tech":          2,
		},
		Denylist: []string{
			"登录", "注册", "首页", "更多", "分享", "收藏", "微信", "微博", "APP",
			"下一页", "上一页", "Subscribe", "Login", "Sign Up", "RSS", "About",
		},
	}
}
