package graphics

// Chunk meshes carry no texture coordinates into an atlas; the fragment
// shader colours by block id, darkens by face and draws a thin outline from
// the per-face UVs so individual blocks stay readable.

const chunkVertexShader = `#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec2 aUV;
layout(location = 2) in float aFace;
layout(location = 3) in float aBlock;

uniform mat4 view;
uniform mat4 projection;

out vec2 vUV;
out vec3 vWorld;
flat out int vFace;
flat out int vBlock;

void main() {
	vUV = aUV;
	vWorld = aPos;
	vFace = int(aFace + 0.5);
	vBlock = int(aBlock + 0.5);
	gl_Position = projection * view * vec4(aPos, 1.0);
}
`

const chunkFragmentShader = `#version 410 core
in vec2 vUV;
in vec3 vWorld;
flat in int vFace;
flat in int vBlock;

uniform vec3 cameraPos;
uniform vec3 skyColor;
uniform float fogStart;
uniform float fogEnd;

out vec4 fragColor;

// Indexed by block id: air, grass, dirt, stone, bedrock, log, leaves.
const vec3 blockColor[7] = vec3[](
	vec3(1.0, 0.0, 1.0),
	vec3(0.36, 0.66, 0.25),
	vec3(0.53, 0.38, 0.24),
	vec3(0.52, 0.52, 0.52),
	vec3(0.20, 0.20, 0.22),
	vec3(0.40, 0.30, 0.17),
	vec3(0.22, 0.50, 0.16)
);

// Indexed by face id: top, bottom, front, back, left, right.
const float faceShade[6] = float[](1.0, 0.55, 0.85, 0.85, 0.72, 0.72);

void main() {
	vec3 base = blockColor[clamp(vBlock, 0, 6)];
	if (vBlock == 1 && vFace != 0) {
		base = blockColor[2];
	}
	vec3 color = base * faceShade[clamp(vFace, 0, 5)];

	vec2 edge = min(vUV, 1.0 - vUV);
	if (min(edge.x, edge.y) < 0.03) {
		color *= 0.8;
	}

	float dist = distance(cameraPos, vWorld);
	float fog = clamp((dist - fogStart) / max(fogEnd - fogStart, 0.001), 0.0, 1.0);
	fragColor = vec4(mix(color, skyColor, fog), 1.0);
}
`
