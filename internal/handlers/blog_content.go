package handlers

// Article is one published blog entry shipped with the application.
type Article struct {
	Slug    string
	Title   string
	Excerpt string
	Body    string
	Date    string
}

var blogPosts = []Article{
	{
		Slug:    "how-ielts-writing-is-scored",
		Title:   "How IELTS Writing is actually scored",
		Excerpt: "The four band criteria examiners use, and what they look for in each.",
		Date:    "2025-11-03",
		Body: `Examiners score IELTS Writing against four criteria: Task Achievement, ` +
			`Coherence and Cohesion, Lexical Resource, and Grammatical Range and Accuracy. ` +
			`Each is scored 0-9 and the overall band is their average, rounded to the ` +
			`nearest half band. Understanding the criteria is the fastest way to raise ` +
			`your score: most candidates lose marks not on grammar, but on task response ` +
			`and paragraph structure.`,
	},
	{
		Slug:    "task-2-essay-structure",
		Title:   "A Task 2 structure that works every time",
		Excerpt: "Introduction, two body paragraphs, conclusion. Here's how to fill them.",
		Date:    "2025-11-17",
		Body: `A reliable Task 2 essay has four paragraphs. The introduction paraphrases ` +
			`the question and states your position. Each body paragraph makes one main ` +
			`point, supported with an explanation and an example. The conclusion restates ` +
			`your position in different words. Aim for 260-290 words: long enough to ` +
			`develop your ideas, short enough to stay accurate.`,
	},
	{
		Slug:    "common-band-6-mistakes",
		Title:   "Five mistakes that keep essays at band 6",
		Excerpt: "The patterns we see most often in essays stuck below band 7.",
		Date:    "2025-12-01",
		Body: `The essays our checker sees stuck at band 6 share the same patterns: ` +
			`memorized openings that don't address the actual question, linking words ` +
			`used mechanically at the start of every sentence, examples that are ` +
			`invented statistics rather than developed reasoning, one-sentence ` +
			`paragraphs, and conclusions that introduce new ideas. Fixing any two of ` +
			`these is usually worth half a band.`,
	},
}
