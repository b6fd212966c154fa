package config

import "NewsHarvester/internal/domain"

// DefaultSources returns the built-in source list for mode.
func DefaultSources(mode domain.Mode) []SourceConfig {
	var src []SourceConfig
	if mode == domain.ModeFinance {
		src = financeSources
	} else {
		src = techSources
	}
	out := make([]SourceConfig, len(src))
	for i, s := range src {
		s.Categories = append([]string(nil), s.Categories...)
		out[i] = s
	}
	return out
}

var techSources = []SourceConfig{
	// domestic
	{Name: "IT之家", URL: "https://www.ithome.com", Type: "tech_news", Priority: "high", Categories: []string{"科技", "数码"}},
	{Name: "InfoQ", URL: "https://www.infoq.cn", Type: "tech_media", Priority: "high", Categories: []string{"技术", "架构"}},
	{Name: "量子位", URL: "https://www.qbitai.com", Type: "ai_media", Priority: "high", Categories: []string{"AI", "科技"}},
	{Name: "虎嗅", URL: "https://www.huxiu.com", Type: "media", Priority: "medium", Categories: []string{"科技", "商业"}},
	{Name: "智源社区", URL: "https://hub.baai.ac.cn", Type: "ai_research", Priority: "high", Categories: []string{"AI", "研究"}},
	{Name: "雷锋网", URL: "https://www.leiphone.com", Type: "ai_media", Priority: "high", Categories: []string{"AI", "科技"}},
	{Name: "PingWest", URL: "https://www.pingwest.com", Type: "tech_media", Priority: "medium", Categories: []string{"科技", "互联网"}},
	{Name: "爱范儿", URL: "https://www.ifanr.com", Type: "tech_media", Priority: "medium", Categories: []string{"科技", "数码"}},
	{Name: "驱动之家", URL: "https://www.mydrivers.com", Type: "tech_news", Priority: "medium", Categories: []string{"科技", "硬件"}},
	{Name: "36氪", URL: "https://36kr.com", Type: "startup_media", Priority: "high", Categories: []string{"创业", "投资"}},
	{Name: "机器之心", URL: "https://www.jiqizhixin.com", Type: "ai_media", Priority: "high", Categories: []string{"AI", "研究"}},

	// international
	{Name: "TechCrunch", URL: "https://techcrunch.com", Type: "international", Priority: "high", Categories: []string{"科技", "创业", "国际"}, FeedURL: "https://techcrunch.com/feed/"},
	{Name: "TheVerge", URL: "https://www.theverge.com", Type: "international", Priority: "high", Categories: []string{"科技", "数码", "国际"}, FeedURL: "https://www.theverge.com/rss/index.xml"},
	{Name: "Wired", URL: "https://www.wired.com", Type: "international", Priority: "high", Categories: []string{"科技", "文化", "国际"}, FeedURL: "https://www.wired.com/feed/rss"},
	{Name: "Ars Technica", URL: "https://arstechnica.com", Type: "international", Priority: "high", Categories: []string{"科技", "技术", "国际"}, FeedURL: "https://feeds.arstechnica.com/arstechnica/index"},
	{Name: "Engadget", URL: "https://www.engadget.com", Type: "international", Priority: "high", Categories: []string{"科技", "数码", "国际"}, FeedURL: "https://www.engadget.com/rss.xml"},
	{Name: "VentureBeat", URL: "https://venturebeat.com", Type: "international", Priority: "high", Categories: []string{"科技", "AI", "国际"}, FeedURL: "https://venturebeat.com/feed/"},
	{Name: "MIT Technology Review", URL: "https://www.technologyreview.com", Type: "international", Priority: "high", Categories: []string{"科技", "研究", "国际"}, FeedURL: "https://www.technologyreview.com/feed/"},
	{Name: "TheRegister", URL: "https://www.theregister.com", Type: "international", Priority: "medium", Categories: []string{"科技", "IT", "国际"}, FeedURL: "https://www.theregister.com/headlines.atom"},
	{Name: "BBC Technology", URL: "https://www.bbc.com/news/technology", Type: "international", Priority: "high", Categories: []string{"科技", "新闻", "国际"}, FeedURL: "https://feeds.bbci.co.uk/news/technology/rss.xml"},
	{Name: "Reuters Tech", URL: "https://www.reuters.com/technology/", Type: "international", Priority: "high", Categories: []string{"科技", "新闻", "国际"}, FeedURL: "https://www.reutersagency.com/feed/?taxonomy=best-topics&post_type=best"},
	{Name: "Hacker News", URL: "https://news.ycombinator.com", Type: "community", Priority: "high", Categories: []string{"技术", "开源", "国际"}, FeedURL: "https://hnrss.org/frontpage"},
	{Name: "Dev.to", URL: "https://dev.to", Type: "community", Priority: "medium", Categories: []string{"技术", "开发", "国际"}, FeedURL: "https://dev.to/feed"},
	{Name: "AI News", URL: "https://www.artificialintelligence-news.com", Type: "ai_media", Priority: "medium", Categories: []string{"AI", "国际"}, FeedURL: "https://www.artificialintelligence-news.com/feed/"},
	{Name: "Synced", URL: "https://syncedreview.com", Type: "ai_media", Priority: "high", Categories: []string{"AI", "研究", "国际"}, FeedURL: "https://syncedreview.com/feed/"},
}

var financeSources = []SourceConfig{
	// domestic
	{Name: "新浪财经", URL: "https://finance.sina.com.cn", Type: "finance_portal", Priority: "high", Categories: []string{"宏观", "股市", "期货"}},
	{Name: "东方财富", URL: "https://www.eastmoney.com", Type: "finance_portal", Priority: "high", Categories: []string{"股市", "基金", "期货"}},
	{Name: "同花顺", URL: "https://www.10jqka.com.cn", Type: "finance_portal", Priority: "high", Categories: []string{"股市", "技术分析"}},
	{Name: "证券时报", URL: "https://www.stcn.com", Type: "finance_media", Priority: "high", Categories: []string{"股市", "宏观", "政策"}},
	{Name: "上海证券报", URL: "https://www.cnstock.com", Type: "finance_media", Priority: "high", Categories: []string{"股市", "政策", "IPO"}},
	{Name: "中国证券报", URL: "https://www.cs.com.cn", Type: "finance_media", Priority: "high", Categories: []string{"股市", "宏观"}},
	{Name: "第一财经", URL: "https://www.yicai.com", Type: "finance_media", Priority: "high", Categories: []string{"宏观", "股市", "国际"}},
	{Name: "经济观察报", URL: "https://www.eeo.com.cn", Type: "finance_media", Priority: "medium", Categories: []string{"宏观", "产业"}},
	{Name: "财新网", URL: "https://www.caixin.com", Type: "finance_media", Priority: "high", Categories: []string{"宏观", "金融", "产业"}},
	{Name: "21世纪经济报道", URL: "https://www.21jingji.com", Type: "finance_media", Priority: "high", Categories: []string{"宏观", "产业", "股市"}},
	{Name: "雪球", URL: "https://xueqiu.com", Type: "stock_community", Priority: "medium", Categories: []string{"股市", "投资观点"}},
	{Name: "淘股吧", URL: "https://www.taoguba.com.cn", Type: "stock_community", Priority: "medium", Categories: []string{"股市", "短线"}},
	{Name: "期货日报", URL: "https://www.qhrb.com.cn", Type: "futures_media", Priority: "high", Categories: []string{"期货", "商品"}},
	{Name: "文华财经", URL: "https://www.wenhua.com.cn", Type: "futures_media", Priority: "medium", Categories: []string{"期货", "技术分析"}},
	{Name: "中国基金报", URL: "https://www.chnfund.com.cn", Type: "fund_media", Priority: "high", Categories: []string{"基金", "机构"}},

	// international
	{Name: "Bloomberg", URL: "https://www.bloomberg.com", Type: "international", Priority: "high", Categories: []string{"国际", "宏观", "股市"}, FeedURL: "https://www.bloomberg.com/feed/podcast/bloomberg-markets.xml"},
	{Name: "Reuters", URL: "https://www.reuters.com", Type: "international", Priority: "high", Categories: []string{"国际", "宏观", "股市"}, FeedURL: "https://www.reutersagency.com/feed/?taxonomy=best-topics&post_type=best"},
	{Name: "WSJ", URL: "https://www.wsj.com", Type: "international", Priority: "high", Categories: []string{"国际", "股市", "宏观"}},
	{Name: "FT", URL: "https://www.ft.com", Type: "international", Priority: "high", Categories: []string{"国际", "宏观", "金融"}},
	{Name: "CNBC", URL: "https://www.cnbc.com", Type: "international", Priority: "high", Categories: []string{"国际", "股市", "宏观"}, FeedURL: "https://www.cnbc.com/id/10000664/device/rss/rss.html"},
	{Name: "MarketWatch", URL: "https://www.marketwatch.com", Type: "international", Priority: "medium", Categories: []string{"美股", "数据"}, FeedURL: "https://www.marketwatch.com/rss/topstories"},
	{Name: "Yahoo Finance", URL: "https://finance.yahoo.com", Type: "international", Priority: "medium", Categories: []string{"美股", "数据"}},
	{Name: "Seeking Alpha", URL: "https://seekingalpha.com", Type: "international", Priority: "medium", Categories: []string{"美股", "分析"}, FeedURL: "https://seekingalpha.com/market_currents.xml"},
	{Name: "Federal Reserve", URL: "https://www.federalreserve.gov", Type: "policy", Priority: "high", Categories: []string{"美联储", "政策"}},
	{Name: "ECB", URL: "https://www.ecb.europa.eu", Type: "policy", Priority: "medium", Categories: []string{"欧洲", "政策"}},
	{Name: "OilPrice", URL: "https://oilprice.com", Type: "commodity", Priority: "high", Categories: []string{"能源", "原油"}, FeedURL: "https://oilprice.com/rss/main"},
	{Name: "Investing.com", URL: "https://www.investing.com", Type: "international", Priority: "medium", Categories: []string{"商品", "外汇", "数据"}, FeedURL: "https://www.investing.com/rss/news.rss"},
	{Name: "CoinDesk", URL: "https://www.coindesk.com", Type: "crypto", Priority: "medium", Categories: []string{"加密货币", "区块链"}, FeedURL: "https://www.coindesk.com/arc/outboundfeeds/rss/"},
	{Name: "Cointelegraph", URL: "https://cointelegraph.com", Type: "crypto", Priority: "medium", Categories: []string{"加密货币"}, FeedURL: "https://cointelegraph.com/rss"},
}
