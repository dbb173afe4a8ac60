package main

import (
	"context"
	"log"
	"time"

	"codequiz/internal/config"
	"codequiz/internal/model"
	"codequiz/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewQuestionRepo(client.Database(cfg.MongoDB))

	existing, err := repo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count questions: %v", err)
	}
	if existing > 0 {
		log.Printf("Question bank already has %d questions, nothing to do", existing)
		return
	}

	inserted, err := repo.CreateMany(ctx, questionBank())
	if err != nil {
		log.Fatalf("Failed to seed questions: %v", err)
	}

	log.Printf("Seeded %d questions", inserted)
}

func questionBank() []model.Question {
	now := time.Now()
	questions := []model.Question{
		// JavaScript
		{
			Question: "What does 'let' do in JavaScript?",
			Answers: map[string]string{
				"answer_a": "Declares a variable with function scope",
				"answer_b": "Declares a variable with block scope",
				"answer_c": "Declares a constant variable",
				"answer_d": "Declares a global variable",
			},
			CorrectAnswer: "answer_b",
			Category:      "JavaScript",
			Difficulty:    "Easy",
		},
		{
			Question: "What is the correct way to check if a variable is an array in JavaScript?",
			Answers: map[string]string{
				"answer_a": "typeof arr === 'array'",
				"answer_b": "Array.isArray(arr)",
				"answer_c": "arr instanceof Array",
				"answer_d": "arr.isArray()",
			},
			CorrectAnswer: "answer_b",
			Category:      "JavaScript",
			Difficulty:    "Medium",
		},
		{
			Question: "Which method adds one or more elements to the end of an array?",
			Answers: map[string]string{
				"answer_a": "push()",
				"answer_b": "pop()",
				"answer_c": "shift()",
				"answer_d": "unshift()",
			},
			CorrectAnswer: "answer_a",
			Category:      "JavaScript",
			Difficulty:    "Easy",
		},
		// Python
		{
			Question: "What is the output of print(2 ** 3) in Python?",
			Answers: map[string]string{
				"answer_a": "5",
				"answer_b": "6",
				"answer_c": "8",
				"answer_d": "9",
			},
			CorrectAnswer: "answer_c",
			Category:      "Python",
			Difficulty:    "Easy",
		},
		{
			Question: "Which keyword is used to create a function in Python?",
			Answers: map[string]string{
				"answer_a": "function",
				"answer_b": "def",
				"answer_c": "define",
				"answer_d": "func",
			},
			CorrectAnswer: "answer_b",
			Category:      "Python",
			Difficulty:    "Easy",
		},
		{
			Question: "What data structure is used to store key-value pairs in Python?",
			Answers: map[string]string{
				"answer_a": "List",
				"answer_b": "Tuple",
				"answer_c": "Dictionary",
				"answer_d": "Set",
			},
			CorrectAnswer: "answer_c",
			Category:      "Python",
			Difficulty:    "Easy",
		},
		// Java
		{
			Question: "Which method is the entry point of a Java application?",
			Answers: map[string]string{
				"answer_a": "start()",
				"answer_b": "run()",
				"answer_c": "main()",
				"answer_d": "init()",
			},
			CorrectAnswer: "answer_c",
			Category:      "Java",
			Difficulty:    "Easy",
		},
		{
			Question: "What does JVM stand for?",
			Answers: map[string]string{
				"answer_a": "Java Virtual Method",
				"answer_b": "Java Virtual Machine",
				"answer_c": "Java Valued Memory",
				"answer_d": "Java Variable Manager",
			},
			CorrectAnswer: "answer_b",
			Category:      "Java",
			Difficulty:    "Easy",
		},
		// React
		{
			Question: "What is the correct way to use state in a React functional component?",
			Answers: map[string]string{
				"answer_a": "useState()",
				"answer_b": "useEffect()",
				"answer_c": "useContext()",
				"answer_d": "useReducer()",
			},
			CorrectAnswer: "answer_a",
			Category:      "React",
			Difficulty:    "Easy",
		},
		{
			Question: "What is JSX?",
			Answers: map[string]string{
				"answer_a": "A JavaScript framework",
				"answer_b": "A syntax extension to JavaScript",
				"answer_c": "A CSS library",
				"answer_d": "A database tool",
			},
			CorrectAnswer: "answer_b",
			Category:      "React",
			Difficulty:    "Easy",
		},
		{
			Question: "What is the virtual DOM in React?",
			Answers: map[string]string{
				"answer_a": "A copy of the actual DOM in memory",
				"answer_b": "A virtual reality feature",
				"answer_c": "A library for animations",
				"answer_d": "A CSS preprocessor",
			},
			CorrectAnswer: "answer_a",
			Category:      "React",
			Difficulty:    "Medium",
		},
		// Node.js
		{
			Question: "What is Node.js?",
			Answers: map[string]string{
				"answer_a": "A JavaScript framework",
				"answer_b": "A JavaScript runtime for server-side development",
				"answer_c": "A database",
				"answer_d": "A CSS preprocessor",
			},
			CorrectAnswer: "answer_b",
			Category:      "Node.js",
			Difficulty:    "Easy",
		},
		{
			Question: "What package manager is used with Node.js?",
			Answers: map[string]string{
				"answer_a": "pip",
				"answer_b": "npm",
				"answer_c": "composer",
				"answer_d": "maven",
			},
			CorrectAnswer: "answer_b",
			Category:      "Node.js",
			Difficulty:    "Easy",
		},
		{
			Question: "What is a callback function in Node.js?",
			Answers: map[string]string{
				"answer_a": "A function that runs once",
				"answer_b": "A function passed as an argument and executed later",
				"answer_c": "A function that returns data",
				"answer_d": "A function that calls itself",
			},
			CorrectAnswer: "answer_b",
			Category:      "Node.js",
			Difficulty:    "Medium",
		},
	}

	for i := range questions {
		questions[i].CreatedAt = now
	}
	return questions
}
