package lexicon

import "NewsHarvester/internal/domain"

// Finance returns the built-in investor-oriented lexicon.
func Finance() Lexicon {
	return Lexicon{
		Mode:     domain.ModeFinance,
		Fallback: "其他",
		Categories: []Category{
			{Name: "宏观政策", Keywords: []string{
				"央行", "美联储", "利率", "降息", "加息", "货币政策", "财政政策",
				"GDP", "CPI", "PMI", "通胀", "通缩", "经济数据", "统计局",
				"国常会", "政治局", "发改委", "商务部", "财政部",
				"Fed", "FOMC", "ECB", "利率决议", "缩表", "QE",
			}},
			{Name: "A股市场", Keywords: []string{
				"A股", "上证", "深证", "创业板", "科创板", "北交所",
				"沪指", "深成指", "两市", "成交额", "北向资金", "南向资金",
				"涨停", "跌停", "龙虎榜", "机构", "游资", "融资", "融券",
			}},
			{Name: "美股市场", Keywords: []string{
				"美股", "纳指", "道指", "标普", "纳斯达克", "纽交所",
				"道琼斯", "S&P", "NYSE", "NASDAQ", "华尔街", "美联储",
				"科技股", "中概股", "ADR", "FAANG", "七巨头",
			}},
			{Name: "港股市场", Keywords: []string{
				"港股", "恒指", "恒生指数", "港交所", "HKEX",
				"港股通", "恒生科技", "腾讯", "阿里", "美团", "小米",
			}},
			{Name: "行业板块", Keywords: []string{
				"半导体", "芯片", "新能源", "光伏", "锂电池", "储能", "风电",
				"白酒", "医药", "生物制药", "医疗器械", "中药",
				"银行", "券商", "保险", "地产", "房地产",
				"汽车", "新能源汽车", "智能驾驶", "汽车零部件",
				"消费电子", "苹果产业链", "消费", "食品饮料",
				"军工", "航天", "通信", "5G", "人工智能", "AI",
				"有色", "煤炭", "石油", "化工", "钢铁", "水泥",
			}},
			{Name: "商品期货", Keywords: []string{
				"期货", "商品", "原油", "黄金", "白银", "铜", "铝",
				"螺纹钢", "铁矿石", "焦炭", "动力煤",
				"农产品", "大豆", "玉米", "小麦", "棉花", "白糖",
				"OPEC", "减产", "增产", "库存", "供需",
			}},
			{Name: "外汇市场", Keywords: []string{
				"汇率", "美元", "人民币", "欧元", "日元", "英镑",
				"USD", "CNY", "EUR", "JPY", "GBP",
				"外汇储备", "贬值", "升值", "汇率波动",
			}},
			{Name: "基金理财", Keywords: []string{
				"基金", "公募", "私募", "ETF", "LOF", "QDII",
				"基金经理", "净值", "申购", "赎回", "定投",
				"权益基金", "债券基金", "货币基金", "指数基金",
			}},
			{Name: "财报业绩", Keywords: []string{
				"财报", "年报", "季报", "业绩", "营收", "净利润",
				"毛利率", "净利率", "ROE", "EPS", "每股收益",
				"业绩预告", "业绩快报", "分析师", "评级", "研报",
			}},
			{Name: "并购重组", Keywords: []string{
				"并购", "重组", "收购", "借壳", "定增", "配股",
				"IPO", "上市", "退市", "私有化", "分拆",
				"股权转让", "要约收购", "合并",
			}},
			{Name: "风险预警", Keywords: []string{
				"暴雷", "违约", "退市", "风险", "调查", "处罚",
				"诉讼", "仲裁", "亏损", "减值", "坏账",
				"质押", "冻结", "破产", "清算",
			}},
		},
		Hints: map[string]string{
			"宏观": "宏观政策",
			"政策": "宏观政策",
			"股市": "A股市场",
			"A股": "A股市场",
			"美股": "美股市场",
			"港股": "港股市场",
			"期货": "商品期货",
			"商品": "商品期货",
			"基金": "基金理财",
			"外汇": "外汇市场",
			"财报": "财报业绩",
			"业绩": "财报业绩",
			"能源": "商品期货",
			"原油": "商品期货",
		},
		Entities: []EntityGroup{
			{Name: "科技巨头", Category: "A股市场", Weight: 1, Members: []string{"苹果", "微软", "谷歌", "Meta", "亚马逊", "特斯拉", "英伟达", "Netflix"}},
			{Name: "中国科技", Category: "A股市场", Weight: 1, Members: []string{"腾讯", "阿里", "字节", "美团", "京东", "拼多多", "百度", "小米", "快手", "B站"}},
			{Name: "新能源", Category: "行业板块", Weight: 1, Members: []string{"宁德时代", "比亚迪", "蔚来", "理想", "小鹏", "隆基", "阳光电源"}},
			{Name: "半导体", Category: "行业板块", Weight: 1, Members: []string{"台积电", "中芯国际", "华虹", "北方华创", "韦尔股份"}},
			{Name: "金融", Weight: 1, Members: []string{"工商银行", "建设银行", "中国平安", "招商银行", "中信证券", "东方财富"}},
			{Name: "消费", Weight: 1, Members: []string{"茅台", "五粮液", "伊利", "海天", "美的", "格力"}},
		},
		Boosts: []Boost{
			{Category: "风险预警", Weight: 5, Keywords: []string{
				"降息", "加息", "QE", "缩表", "利率决议",
				"贸易战", "制裁", "地缘政治", "战争",
				"疫情", "封锁", "衰退", "危机",
				"财报超预期", "业绩暴雷", "重大并购",
				"暴雷", "违约", "退市", "调查", "处罚",
			}},
		},
		Importance: []Term{
			{Text: "降息", Weight: 5}, {Text: "加息", Weight: 5}, {Text: "利率决议", Weight: 5}, {Text: "货币政策", Weight: 4},
			{Text: "国常会", Weight: 4}, {Text: "政治局会议", Weight: 4}, {Text: "美联储", Weight: 5}, {Text: "央行", Weight: 4},
			{Text: "财报", Weight: 4}, {Text: "业绩", Weight: 3}, {Text: "超预期", Weight: 4}, {Text: "暴雷", Weight: 5},
			{Text: "北向资金", Weight: 3}, {Text: "机构", Weight: 2}, {Text: "龙虎榜", Weight: 2},
			{Text: "茅台", Weight: 3}, {Text: "宁德时代", Weight: 3}, {Text: "比亚迪", Weight: 3}, {Text: "腾讯", Weight: 3},
			{Text: "英伟达", Weight: 3}, {Text: "特斯拉", Weight: 3}, {Text: "苹果", Weight: 2},
			{Text: "风险", Weight: 3}, {Text: "调查", Weight: 3}, {Text: "处罚", Weight: 3}, {Text: "违约", Weight: 4},
			{Text: "贸易战", Weight: 4}, {Text: "制裁", Weight: 4}, {Text: "地缘", Weight: 3},
		},
		Urgency:       []string{"今日", "刚刚", "突发", "重磅", "紧急"},
		UrgencyWeight: 2,
		Reputation: map[string]int{
			"证券时报":      5,
			"上海证券报":     5,
			"中国证券报":     5,
			"第一财经":      5,
			"财新网":       5,
			"21世纪经济报道":  5,
			"经济观察报":     4,
			"Bloomberg": 5,
			"Reuters":   5,
			"WSJ":       5,
			"FT":        5,
			"CNBC":      4,
			"新浪财经":      4,
			"东方财富":      4,
			"同花顺":       3,
			"期货日报":      4,
			"中国基金报":     4,
			"雪球":        2,
			"淘股吧":       2,
		},
		Denylist: []string{
			"登录", "注册", "首页", "更多", "分享", "收藏", "微信", "微博", "APP",
			"下一页", "上一页", "Subscribe", "Login", "Sign Up", "RSS", "About",
			"广告", "合作", "联系我们", "版权",
		},
		Required: []string{
			"股", "市", "金", "财", "经", "投资", "基金", "期货", "债", "汇率",
			"利率", "通胀", "GDP", "央行", "银行", "上市", "财报", "业绩",
			"融资", "并购", "IPO", "证券", "指数", "板块", "涨", "跌",
			"stock", "market", "invest", "fund", "trade", "economy", "finance",
			"rate", "bond", "currency", "profit", "loss", "earnings",
		},
		RiskCategory: "风险预警",
		Signals: Signals{
			Bullish: []string{
				"上涨", "大涨", "暴涨", "新高", "突破", "利好", "盈利", "增长", "超预期",
				"降息", "宽松", "刺激", "反弹", "回暖", "恢复", "并购", "收购",
				"增持", "回购", "分红", "业绩大增", "扭亏", "订单", "中标",
				"surge", "rally", "gain", "profit", "growth", "beat", "rise",
			},
			Bearish: []string{
				"下跌", "大跌", "暴跌", "新低", "破位", "利空", "亏损", "下滑", "不及预期",
				"加息", "收紧", "萎缩", "衰退", "裁员", "破产", "违约", "暴雷",
				"减持", "抛售", "退市", "调查", "处罚", "诉讼", "罚款",
				"plunge", "crash", "drop", "loss", "down", "recession", "fear",
			},
			Indices: []Alias{
				{Name: "上证指数", Aliases: []string{"上证指数", "沪指", "上证"}},
				{Name: "深证成指", Aliases: []string{"深证成指", "深成指"}},
				{Name: "创业板指", Aliases: []string{"创业板指", "创业板"}},
				{Name: "科创50", Aliases: []string{"科创50", "科创板"}},
				{Name: "恒生指数", Aliases: []string{"恒生指数", "恒指"}},
				{Name: "道琼斯", Aliases: []string{"道琼斯", "道指"}},
				{Name: "纳斯达克", Aliases: []string{"纳斯达克", "纳指"}},
				{Name: "标普500", Aliases: []string{"标普500", "S&P"}},
			},
			Sectors: []string{
				"半导体", "芯片", "新能源", "光伏", "锂电池", "储能", "风电",
				"白酒", "医药", "生物制药", "医疗器械", "中药",
				"银行", "券商", "保险", "地产", "房地产",
				"汽车", "新能源汽车", "智能驾驶",
				"消费电子", "苹果产业链", "消费", "食品饮料",
				"军工", "航天", "通信", "5G", "人工智能", "AI",
				"互联网", "电商", "游戏", "传媒", "教育",
				"有色", "煤炭", "石油", "化工", "钢铁",
			},
			Companies: []string{
				"茅台", "宁德时代", "比亚迪", "腾讯", "阿里", "字节", "美团",
				"华为", "小米", "蔚来", "理想", "小鹏", "中芯国际",
				"苹果", "特斯拉", "英伟达", "微软", "谷歌", "Meta", "亚马逊",
			},
		},
	}
}
