// Package site holds the static marketing content of the SoftShell landing
// page, served read-only over the API.
package site

type Step struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

type Reason struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

type Testimonial struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Company   string `json:"company"`
	Quote     string `json:"quote"`
	Rating    int    `json:"rating"`
	Highlight string `json:"highlight"`
}

var HowItWorksSteps = []Step{
	{
		ID:          1,
		Title:       "Upload License",
		Description: "Upload your unused software license details through our secure portal. We support all major software vendors.",
		Icon:        "upload",
		Color:       "blue",
	},
	{
		ID:          2,
		Title:       "Get Valuation",
		Description: "Our AI-powered system analyzes market trends to provide an accurate valuation of your software license within minutes.",
		Icon:        "chart",
		Color:       "purple",
	},
	{
		ID:          3,
		Title:       "Get Paid",
		Description: "Accept the offer and receive payment through your preferred method. Funds are typically transferred within 48 hours.",
		Icon:        "cash",
		Color:       "green",
	},
}

var WhyChooseUsReasons = []Reason{
	{
		ID:          1,
		Title:       "Instant Valuation",
		Description: "Get an accurate market value for your license in minutes, not days.",
		Icon:        "clock",
		Color:       "indigo",
	},
	{
		ID:          2,
		Title:       "Secure Transactions",
		Description: "Our platform uses bank-level encryption to ensure your data and transactions are always protected.",
		Icon:        "shield",
		Color:       "teal",
	},
	{
		ID:          3,
		Title:       "Compliance Guaranteed",
		Description: "We handle all licensing compliance issues, so you can sell with confidence.",
		Icon:        "document",
		Color:       "red",
	},
	{
		ID:          4,
		Title:       "Global Marketplace",
		Description: "Access buyers from around the world, maximizing the value of your software licenses.",
		Icon:        "globe",
		Color:       "amber",
	},
}

var Testimonials = []Testimonial{
	{
		ID:      1,
		Name:    "Sarah Johnson",
		Role:    "CTO",
		Company: "TechNova Solutions",
		Quote: "SoftShell transformed how we handle excess software licenses. We were able to recoup 65% of our initial investment on unused enterprise licenses. " +
			"The process was seamless and secure - exactly what our compliance team needed.",
		Rating:    5,
		Highlight: "65% cost recovery",
	},
	{
		ID:      2,
		Name:    "Marcus Chen",
		Role:    "IT Director",
		Company: "GlobalFinance Corp",
		Quote: "As a financial institution, security was our primary concern. SoftShell's verification process gave us the confidence to proceed, and their valuation exceeded our expectations. " +
			"We've now made license recovery a standard part of our IT asset management.",
		Rating:    5,
		Highlight: "Enterprise-grade security",
	},
	{
		ID:      3,
		Name:    "Jessica Martinez",
		Role:    "Operations Manager",
		Company: "Innovate Design Studios",
		Quote: "We had a surplus of design software licenses after downsizing our team. SoftShell helped us convert those unused assets into working capital when we needed it most. " +
			"The valuation was fair and the payment was processed within 24 hours.",
		Rating:    4,
		Highlight: "Fast payment",
	},
	{
		ID:      4,
		Name:    "Alexander Wright",
		Role:    "CFO",
		Company: "Momentum Ventures",
		Quote: "Our quarterly audit revealed thousands in unused software licenses. SoftShell's platform made it incredibly easy to recover that cost. " +
			"Their market analytics provided transparency into the valuation, and their customer service was exceptional throughout the process.",
		Rating:    5,
		Highlight: "Transparent valuation",
	},
}
