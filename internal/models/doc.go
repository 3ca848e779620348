// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

/*
Package models defines the data structures shared across Coursewise.

Key Components:

  - Course: an immutable catalog entry (code, department, difficulty, tags, workload)
  - StudentProfile: the declared attributes of the student being advised
  - Recommendation: one ranked course with its confidence score and reasoning
  - ErrorDocument: the single structured error written by the command entry point

Documents arrive as loosely typed JSON produced by other systems, so the decoders in
this package are fail-soft: a field with the wrong type falls back to its documented
default instead of failing the whole document. Only a document that is not valid JSON,
or whose root has the wrong shape, is reported as an error.

Field names follow the wire schema used by the advising backend:

	{
	  "id": 1,
	  "code": "CS101",
	  "name": "Introduction to Computer Science",
	  "department": "Technology",
	  "credits": 3,
	  "difficulty": 2,
	  "prerequisites": [],
	  "career_relevance": ["Software Engineering", "Data Science", "IT"],
	  "learning_style": ["Visual", "Hands-on"],
	  "workload_hours": 8
	}
*/
package models
