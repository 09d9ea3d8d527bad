package laplace

import "time"

// Region is the market jurisdiction. It决定 endpoint 路径和 payload 形状，
// 所以到处都要带着。
type Region string

const (
	RegionTR Region = "tr"
	RegionUS Region = "us"
)

// Locale selects the language of localized fields.
type Locale string

const (
	LocaleTR Locale = "tr"
	LocaleEN Locale = "en"
)

// PageSize is the set of page sizes the API accepts.
type PageSize int

const (
	PageSize10 PageSize = 10
	PageSize20 PageSize = 20
	PageSize50 PageSize = 50
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type AssetType string

const (
	AssetTypeStock       AssetType = "stock"
	AssetTypeForex       AssetType = "forex"
	AssetTypeIndex       AssetType = "index"
	AssetTypeETF         AssetType = "etf"
	AssetTypeCommodity   AssetType = "commodity"
	AssetTypeStockRights AssetType = "stock_rights"
	AssetTypeFund        AssetType = "fund"
	AssetTypeAll         AssetType = "all"
)

type AssetClass string

const (
	AssetClassEquity AssetClass = "equity"
	AssetClassCrypto AssetClass = "crypto"
	AssetClassAll    AssetClass = "all"
)

type SearchType string

const (
	SearchTypeStock      SearchType = "stock"
	SearchTypeCollection SearchType = "collection"
	SearchTypeSector     SearchType = "sector"
	SearchTypeIndustry   SearchType = "industry"
)

type CapitalIncreaseType string

const (
	CapitalIncreaseRights        CapitalIncreaseType = "rights"
	CapitalIncreaseBonus         CapitalIncreaseType = "bonus"
	CapitalIncreaseBonusDividend CapitalIncreaseType = "bonus_dividend"
	CapitalIncreaseExternal      CapitalIncreaseType = "external"
)

// IntervalPrice is the candle interval for v1/stock/price/interval.
type IntervalPrice string

const (
	Interval1Minute   IntervalPrice = "1m"
	Interval5Minutes  IntervalPrice = "5m"
	Interval30Minutes IntervalPrice = "30m"
	Interval1Hour     IntervalPrice = "1h"
	Interval1Day      IntervalPrice = "1d"
)

// PaginatedResponse wraps list endpoints that page on the server side.
type PaginatedResponse[T any] struct {
	RecordCount int `json:"recordCount"`
	Items       []T `json:"items"`
}

// ---- stocks ----

type Stock struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Active      bool      `json:"active"`
	Symbol      string    `json:"symbol"`
	SectorID    string    `json:"sectorId"`
	AssetType   AssetType `json:"assetType"`
	IndustryID  string    `json:"industryId"`
	UpdatedDate time.Time `json:"updatedDate"`
}

type StockDetail struct {
	ID                          string            `json:"id"`
	Name                        string            `json:"name"`
	Active                      bool              `json:"active"`
	Region                      Region            `json:"region"`
	Symbol                      string            `json:"symbol"`
	SectorID                    string            `json:"sectorId"`
	AssetType                   AssetType         `json:"assetType"`
	AssetClass                  AssetClass        `json:"assetClass"`
	IndustryID                  string            `json:"industryId"`
	Description                 string            `json:"description"`
	UpdatedDate                 time.Time         `json:"updatedDate"`
	ShortDescription            string            `json:"shortDescription"`
	LocalizedDescription        map[string]string `json:"localizedDescription"`
	LocalizedShortDescription   map[string]string `json:"localizedShortDescription"`
}

// PriceCandle uses the API's compact field names on the wire.
type PriceCandle struct {
	Close float64 `json:"c"`
	Date  float64 `json:"d"`
	High  float64 `json:"h"`
	Low   float64 `json:"l"`
	Open  float64 `json:"o"`
}

type StockPriceData struct {
	Symbol      string        `json:"symbol"`
	OneDay      []PriceCandle `json:"1D"`
	OneWeek     []PriceCandle `json:"1W"`
	OneMonth    []PriceCandle `json:"1M"`
	ThreeMonths []PriceCandle `json:"3M"`
	OneYear     []PriceCandle `json:"1Y"`
	TwoYears    []PriceCandle `json:"2Y"`
	ThreeYears  []PriceCandle `json:"3Y"`
	FiveYears   []PriceCandle `json:"5Y"`
}

type TickRule struct {
	PriceFrom float64 `json:"priceFrom"`
	PriceTo   float64 `json:"priceTo"`
	TickSize  float64 `json:"tickSize"`
}

type StockRules struct {
	Rules           []TickRule `json:"rules"`
	BasePrice       float64    `json:"basePrice"`
	AdditionalPrice int        `json:"additionalPrice"`
	LowerPriceLimit float64    `json:"lowerPriceLimit"`
	UpperPriceLimit float64    `json:"upperPriceLimit"`
}

type StockRestriction struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Symbol      string     `json:"symbol,omitempty"`
	Market      string     `json:"market,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Description string     `json:"description"`
}

type TopMover struct {
	Change     float64    `json:"change"`
	Symbol     string     `json:"symbol"`
	AssetType  AssetType  `json:"assetType"`
	AssetClass AssetClass `json:"assetClass"`
}

type Dividend struct {
	Date           time.Time `json:"date"`
	NetRatio       float64   `json:"netRatio"`
	NetAmount      float64   `json:"netAmount"`
	PriceThen      float64   `json:"priceThen"`
	GrossRatio     float64   `json:"grossRatio"`
	GrossAmount    float64   `json:"grossAmount"`
	StoppageRatio  float64   `json:"stoppageRatio"`
	StoppageAmount float64   `json:"stoppageAmount"`
}

type StockStats struct {
	EPS               float64 `json:"eps"`
	DayLow            float64 `json:"dayLow"`
	Symbol            string  `json:"symbol"`
	DayHigh           float64 `json:"dayHigh"`
	DayOpen           float64 `json:"dayOpen"`
	PBRatio           float64 `json:"pbRatio"`
	PERatio           float64 `json:"peRatio"`
	YearLow           float64 `json:"yearLow"`
	YearHigh          float64 `json:"yearHigh"`
	MarketCap         float64 `json:"marketCap"`
	YTDReturn         float64 `json:"ytdReturn"`
	ThreeYearReturn   float64 `json:"3YearReturn"`
	FiveYearReturn    float64 `json:"5YearReturn"`
	LatestPrice       float64 `json:"latestPrice"`
	ThreeMonthReturn  float64 `json:"3MonthReturn"`
	WeeklyReturn      float64 `json:"weeklyReturn"`
	YearlyReturn      float64 `json:"yearlyReturn"`
	MonthlyReturn     float64 `json:"monthlyReturn"`
	PreviousClose     float64 `json:"previousClose"`
	LowerPriceLimit   float64 `json:"lowerPriceLimit"`
	UpperPriceLimit   float64 `json:"upperPriceLimit"`
}

type AggregateGraphData struct {
	Graph         []PriceCandle `json:"graph"`
	PreviousClose float64       `json:"previous_close"`
}

type KeyInsight struct {
	Symbol   string `json:"symbol"`
	Insights string `json:"insights"`
}

// ---- collections / themes / sectors / industries ----

type CollectionStock struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Symbol     string    `json:"symbol"`
	SectorID   string    `json:"sectorId"`
	AssetType  AssetType `json:"assetType"`
	IndustryID string    `json:"industryId"`
}

type Collection struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Region     []Region   `json:"region"`
	ImageURL   string     `json:"imageUrl"`
	AvatarURL  string     `json:"avatarUrl"`
	NumStocks  int        `json:"numStocks"`
	AssetClass AssetClass `json:"assetClass"`
}

type CollectionDetail struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Region     []Region          `json:"region"`
	Stocks     []CollectionStock `json:"stocks"`
	ImageURL   string            `json:"imageUrl"`
	AvatarURL  string            `json:"avatarUrl"`
	NumStocks  int               `json:"numStocks"`
	AssetClass AssetClass        `json:"assetClass"`
}

// Themes share the collection shape on the wire.
type Theme = Collection

type ThemeDetail = CollectionDetail

type Sector struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ImageURL  string `json:"imageUrl"`
	AvatarURL string `json:"avatarUrl"`
	NumStocks int    `json:"numStocks"`
}

type SectorDetail struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Region    []Region          `json:"region"`
	Stocks    []CollectionStock `json:"stocks"`
	ImageURL  string            `json:"imageUrl"`
	AvatarURL string            `json:"avatarUrl"`
	NumStocks int               `json:"numStocks"`
}

type Industry = Sector

type IndustryDetail = SectorDetail

// ---- financials ----

type RatioComparisonPeerType string

const (
	PeerTypeIndustry RatioComparisonPeerType = "industry"
	PeerTypeSector   RatioComparisonPeerType = "sector"
)

type HistoricalRatiosFormat string

const (
	RatiosFormatCurrency   HistoricalRatiosFormat = "currency"
	RatiosFormatPercentage HistoricalRatiosFormat = "percentage"
	RatiosFormatDecimal    HistoricalRatiosFormat = "decimal"
)

type FinancialSheetType string

const (
	SheetIncomeStatement FinancialSheetType = "incomeStatement"
	SheetBalanceSheet    FinancialSheetType = "balanceSheet"
	SheetCashFlow        FinancialSheetType = "cashFlowStatement"
)

type FinancialSheetPeriod string

const (
	PeriodAnnual     FinancialSheetPeriod = "annual"
	PeriodQuarterly  FinancialSheetPeriod = "quarterly"
	PeriodCumulative FinancialSheetPeriod = "cumulative"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyTRY Currency = "TRY"
	CurrencyEUR Currency = "EUR"
)

type StockPeerFinancialRatioComparisonData struct {
	Slug    string  `json:"slug"`
	Value   float64 `json:"value"`
	Average float64 `json:"average"`
}

type StockPeerFinancialRatioComparison struct {
	MetricName      string                                  `json:"metricName"`
	NormalizedValue float64                                 `json:"normalizedValue"`
	Data            []StockPeerFinancialRatioComparisonData `json:"data"`
}

type StockHistoricalRatiosData struct {
	Period     string  `json:"period"`
	Value      float64 `json:"value"`
	SectorMean float64 `json:"sectorMean"`
}

type StockHistoricalRatios struct {
	Slug             string                      `json:"slug"`
	FinalValue       float64                     `json:"finalValue"`
	ThreeYearGrowth  float64                     `json:"threeYearGrowth"`
	YearGrowth       float64                     `json:"yearGrowth"`
	FinalSectorValue float64                     `json:"finalSectorValue"`
	Currency         Currency                    `json:"currency"`
	Format           HistoricalRatiosFormat      `json:"format"`
	Name             string                      `json:"name"`
	Items            []StockHistoricalRatiosData `json:"items"`
}

type StockHistoricalRatiosDescription struct {
	ID          int    `json:"id"`
	Format      string `json:"format"`
	Currency    string `json:"currency"`
	Slug        string `json:"slug"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Locale      Locale `json:"locale"`
	IsRealtime  bool   `json:"isRealtime"`
}

type HistoricalFinancialSheetRow struct {
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	LineCodeID  int     `json:"lineCodeId"`
	IndentLevel int     `json:"indentLevel"`
}

type HistoricalFinancialSheet struct {
	Period string                        `json:"period"`
	Items  []HistoricalFinancialSheetRow `json:"items"`
}

type HistoricalFinancialSheets struct {
	Sheets []HistoricalFinancialSheet `json:"sheets"`
}

// FinancialSheetDate is a plain calendar date; the API wants YYYY-MM-DD.
type FinancialSheetDate struct {
	Day   int
	Month int
	Year  int
}

// ---- funds ----

type Fund struct {
	Name          string    `json:"name"`
	Active        bool      `json:"active"`
	Symbol        string    `json:"symbol"`
	FundType      string    `json:"fundType"`
	AssetType     AssetType `json:"assetType"`
	RiskLevel     int       `json:"riskLevel"`
	OwnerSymbol   string    `json:"ownerSymbol"`
	ManagementFee float64   `json:"managementFee"`
}

type FundStats struct {
	YearBeta         float64 `json:"yearBeta"`
	YearStdev        float64 `json:"yearStdev"`
	YTDReturn        float64 `json:"ytdReturn"`
	YearMomentum     float64 `json:"yearMomentum"`
	YearlyReturn     float64 `json:"yearlyReturn"`
	MonthlyReturn    float64 `json:"monthlyReturn"`
	FiveYearReturn   float64 `json:"fiveYearReturn"`
	SixMonthReturn   float64 `json:"sixMonthReturn"`
	ThreeYearReturn  float64 `json:"threeYearReturn"`
	ThreeMonthReturn float64 `json:"threeMonthReturn"`
}

type FundPriceData struct {
	AUM           float64   `json:"aum"`
	Date          time.Time `json:"date"`
	Price         float64   `json:"price"`
	ShareCount    int       `json:"shareCount"`
	InvestorCount int       `json:"investorCount"`
}

type FundAsset struct {
	Type               string  `json:"type"`
	Symbol             string  `json:"symbol"`
	WholePercentage    float64 `json:"wholePercentage"`
	CategoryPercentage float64 `json:"categoryPercentage"`
}

type FundCategory struct {
	Category   string      `json:"category"`
	Percentage float64     `json:"percentage"`
	Assets     []FundAsset `json:"assets,omitempty"`
}

type FundDistribution struct {
	Categories []FundCategory `json:"categories"`
}

// ---- brokers ----

type Broker struct {
	ID       int    `json:"id"`
	Logo     string `json:"logo"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	LongName string `json:"longName"`
}

type BrokerTotalStats struct {
	NetAmount       float64 `json:"netAmount"`
	TotalAmount     float64 `json:"totalAmount"`
	TotalVolume     int64   `json:"totalVolume"`
	TotalBuyAmount  float64 `json:"totalBuyAmount"`
	TotalBuyVolume  int64   `json:"totalBuyVolume"`
	TotalSellAmount float64 `json:"totalSellAmount"`
	TotalSellVolume int64   `json:"totalSellVolume"`
}

type BrokerTradingData struct {
	Broker          Broker  `json:"broker"`
	NetAmount       float64 `json:"netAmount"`
	TotalAmount     float64 `json:"totalAmount"`
	TotalVolume     int64   `json:"totalVolume"`
	TotalBuyAmount  float64 `json:"totalBuyAmount"`
	TotalBuyVolume  int64   `json:"totalBuyVolume"`
	TotalSellAmount float64 `json:"totalSellAmount"`
	TotalSellVolume int64   `json:"totalSellVolume"`
}

type BrokerMarketData struct {
	Items       []BrokerTradingData `json:"items"`
	TotalStats  BrokerTotalStats    `json:"totalStats"`
	RecordCount int                 `json:"recordCount"`
}

type StockInfo struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Symbol     string     `json:"symbol"`
	AssetType  AssetType  `json:"assetType"`
	AssetClass AssetClass `json:"assetClass"`
}

type StockTradingData struct {
	Stock           StockInfo `json:"stock"`
	NetAmount       float64   `json:"netAmount"`
	TotalAmount     float64   `json:"totalAmount"`
	TotalVolume     int64     `json:"totalVolume"`
	TotalBuyAmount  float64   `json:"totalBuyAmount"`
	TotalBuyVolume  int64     `json:"totalBuyVolume"`
	TotalSellAmount float64   `json:"totalSellAmount"`
	TotalSellVolume int64     `json:"totalSellVolume"`
}

type BrokerStockData struct {
	Items       []StockTradingData `json:"items"`
	TotalStats  BrokerTotalStats   `json:"totalStats"`
	RecordCount int                `json:"recordCount"`
}

type BrokerSort string

const (
	BrokerSortNetAmount       BrokerSort = "netAmount"
	BrokerSortTotalAmount     BrokerSort = "totalAmount"
	BrokerSortTotalVolume     BrokerSort = "totalVolume"
	BrokerSortTotalBuyAmount  BrokerSort = "totalBuyAmount"
	BrokerSortTotalBuyVolume  BrokerSort = "totalBuyVolume"
	BrokerSortTotalSellAmount BrokerSort = "totalSellAmount"
	BrokerSortTotalSellVolume BrokerSort = "totalSellVolume"
)

// ---- politicians ----

type Politician struct {
	ID             int       `json:"id"`
	PoliticianName string    `json:"politicianName"`
	TotalHoldings  int       `json:"totalHoldings"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

type Holding struct {
	PoliticianName string    `json:"politicianName"`
	Symbol         string    `json:"symbol"`
	Company        string    `json:"company"`
	Holding        string    `json:"holding"`
	Allocation     string    `json:"allocation"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

type HoldingShort struct {
	Symbol     string `json:"symbol"`
	Company    string `json:"company"`
	Holding    string `json:"holding"`
	Allocation string `json:"allocation"`
}

type TopHoldingPolitician struct {
	Name       string `json:"name"`
	Holding    string `json:"holding"`
	Allocation string `json:"allocation"`
}

type TopHolding struct {
	Symbol      string                 `json:"symbol"`
	Company     string                 `json:"company"`
	Politicians []TopHoldingPolitician `json:"politicians"`
	Count       int                    `json:"count"`
}

type PoliticianDetail struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Holdings      []HoldingShort `json:"holdings"`
	TotalHoldings int            `json:"totalHoldings"`
	LastUpdated   time.Time      `json:"lastUpdated"`
}

// ---- capital increase ----

type CapitalIncrease struct {
	ID                            int                   `json:"id"`
	Types                         []CapitalIncreaseType `json:"types"`
	Symbol                        string                `json:"symbol"`
	BonusRate                     string                `json:"bonusRate,omitempty"`
	RightsRate                    string                `json:"rightsRate,omitempty"`
	PaymentDate                   *time.Time            `json:"paymentDate,omitempty"`
	RightsPrice                   string                `json:"rightsPrice,omitempty"`
	RightsEndDate                 *time.Time            `json:"rightsEndDate,omitempty"`
	TargetCapital                 string                `json:"targetCapital,omitempty"`
	BonusStartDate                *time.Time            `json:"bonusStartDate,omitempty"`
	CurrentCapital                string                `json:"currentCapital,omitempty"`
	RightsStartDate               *time.Time            `json:"rightsStartDate,omitempty"`
	SPKApprovalDate               string                `json:"spkApprovalDate,omitempty"`
	BonusTotalAmount              string                `json:"bonusTotalAmount,omitempty"`
	RegistrationDate              *time.Time            `json:"registrationDate,omitempty"`
	BoardDecisionDate             *time.Time            `json:"boardDecisionDate,omitempty"`
	BonusDividendRate             string                `json:"bonusDividendRate,omitempty"`
	RightsTotalAmount             string                `json:"rightsTotalAmount,omitempty"`
	SpecifiedCurrency             string                `json:"specifiedCurrency,omitempty"`
	RightsLastSellDate            *time.Time            `json:"rightsLastSellDate,omitempty"`
	SPKApplicationDate            *time.Time            `json:"spkApplicationDate,omitempty"`
	RelatedDisclosureIDs          []int                 `json:"relatedDisclosureIds"`
	SPKApplicationResult          string                `json:"spkApplicationResult,omitempty"`
	BonusDividendTotalAmount      string                `json:"bonusDividendTotalAmount,omitempty"`
	RegisteredCapitalCeiling      string                `json:"registeredCapitalCeiling,omitempty"`
	ExternalCapitalIncreaseRate   string                `json:"externalCapitalIncreaseRate,omitempty"`
	ExternalCapitalIncreaseAmount string                `json:"externalCapitalIncreaseAmount,omitempty"`
}

// ---- search ----

type SearchResultStock struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Symbol     string     `json:"symbol"`
	Region     Region     `json:"region"`
	AssetClass AssetClass `json:"assetType"`
	AssetType  AssetType  `json:"type"`
}

type SearchResultCollection struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Region     []Region   `json:"region"`
	AssetClass AssetClass `json:"assetClass"`
	ImageURL   string     `json:"imageUrl"`
	AvatarURL  string     `json:"avatarUrl"`
}

type SearchData struct {
	Stocks      []SearchResultStock      `json:"stocks"`
	Collections []SearchResultCollection `json:"collections"`
	Sectors     []SearchResultCollection `json:"sectors"`
	Industries  []SearchResultCollection `json:"industries"`
}

// ---- news ----

type NewsType string

const (
	NewsTypeNews       NewsType = "news"
	NewsTypeDisclosure NewsType = "disclosure"
)

type NewsOrderBy string

const (
	NewsOrderByPublishDate NewsOrderBy = "publishDate"
	NewsOrderByUpdatedDate NewsOrderBy = "updatedDate"
)

type News struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	Type        NewsType  `json:"type"`
	ImageURL    string    `json:"imageUrl"`
	Symbols     []string  `json:"symbols"`
	PublishDate time.Time `json:"publishDate"`
}

type NewsHighlight struct {
	Summary string `json:"summary"`
	News    []News `json:"news"`
}

// ---- earnings ----

type EarningsTranscriptListItem struct {
	Symbol     string `json:"symbol"`
	Year       int    `json:"year"`
	Quarter    int    `json:"quarter"`
	Date       string `json:"date"`
	FiscalYear int    `json:"fiscal_year"`
}

type EarningsTranscriptWithSummary struct {
	Symbol     string `json:"symbol"`
	Year       int    `json:"year"`
	Quarter    int    `json:"quarter"`
	Date       string `json:"date"`
	Content    string `json:"content"`
	Summary    string `json:"summary,omitempty"`
	HasSummary bool   `json:"has_summary"`
}

// ---- market state ----

type MarketState struct {
	ID            int       `json:"id"`
	MarketSymbol  string    `json:"marketSymbol,omitempty"`
	State         string    `json:"state"`
	LastTimestamp time.Time `json:"lastTimestamp"`
	StockSymbol   string    `json:"stockSymbol,omitempty"`
}
