package app

import "math/rand"

const passageSource = "SwiftType"

type Passage struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

var passages = []string{
	"The field of computer science has evolved dramatically over the past few decades, transforming the way we live and work. From the early days of punch cards and mainframe computers to today's cloud computing and artificial intelligence, the journey has been nothing short of revolutionary. Programming languages have become more sophisticated, allowing developers to create complex applications with relative ease. The rise of open-source software has fostered collaboration and innovation across the globe, while the internet has connected billions of people and devices. Machine learning and artificial intelligence are now capable of performing tasks that were once thought to be exclusively human, from recognizing images to translating languages in real-time. Cybersecurity has become increasingly important as our reliance on digital systems grows, with new threats emerging every day. The future of computing promises even more exciting developments, from quantum computing to brain-computer interfaces. As technology continues to advance, it's crucial that we consider both the benefits and potential challenges of these innovations.",
	"The history of the internet is a fascinating tale of innovation and collaboration. What began as a military project in the 1960s has grown into a global network that connects billions of people. The World Wide Web, created by Tim Berners-Lee in 1989, revolutionized how we access and share information. Today, we can stream high-definition video, conduct virtual meetings, and access vast amounts of knowledge with just a few clicks. Social media platforms have transformed how we communicate and build communities, while e-commerce has changed the way we shop and do business. Cloud computing has made it possible to store and process massive amounts of data without expensive hardware. The Internet of Things connects everyday devices to the internet, creating smart homes and cities. As we look to the future, technologies like 5G and edge computing promise even faster and more reliable connections. However, this digital revolution also brings challenges, from privacy concerns to the digital divide. It's essential that we work to ensure the internet remains open, secure, and accessible to all.",
	"Artificial Intelligence represents one of the most significant technological advances of our time. From simple rule-based systems to complex neural networks, AI has evolved to perform tasks that were once thought to be exclusively human. Machine learning algorithms can now recognize patterns in data, make predictions, and even create art. Deep learning has enabled breakthroughs in computer vision, natural language processing, and robotics. AI systems can diagnose diseases, drive cars, and translate languages in real-time. However, this rapid advancement also raises important ethical questions. We must consider issues of bias, privacy, and the potential impact on employment. The development of artificial general intelligence, while still theoretical, could fundamentally change our relationship with technology. As we continue to push the boundaries of what's possible, it's crucial that we develop AI systems that are transparent, fair, and aligned with human values. The future of AI holds both incredible promise and significant challenges that we must navigate carefully.",
	"The world of software development has undergone a remarkable transformation in recent years. Modern development practices emphasize collaboration, automation, and continuous improvement. Agile methodologies have replaced traditional waterfall approaches, allowing teams to respond quickly to changing requirements. Version control systems like Git have revolutionized how developers work together, while containerization and microservices have made applications more scalable and maintainable. The rise of DevOps has blurred the lines between development and operations, leading to faster deployment cycles and more reliable systems. Cloud platforms have made it easier than ever to build and deploy applications, with services ranging from simple hosting to complex machine learning APIs. Open-source software has become the foundation of modern development, with communities working together to create powerful tools and frameworks. As technology continues to evolve, developers must stay current with new languages, frameworks, and best practices. The future of software development promises even more exciting innovations, from quantum computing to augmented reality applications.",
}

// PassageService serves practice passages picked uniformly at random.
type PassageService struct {
	pick func(n int) int
}

func NewPassageService() *PassageService {
	return &PassageService{pick: rand.Intn}
}

func (s *PassageService) Random() Passage {
	return Passage{
		Text:   passages[s.pick(len(passages))],
		Source: passageSource,
	}
}
